package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	derr "github.com/ozzus/trip-weather/internal/domain/errors"
	"github.com/ozzus/trip-weather/internal/domain/models"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Repository, error) {
	poolCfg, err := buildPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Repository{db: pool}, nil
}

func buildPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %w", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.StatementCacheCapacity = 0
	poolCfg.ConnConfig.DescriptionCacheCapacity = 0

	return poolCfg, nil
}

func (r *Repository) Close() {
	r.db.Close()
}

func (r *Repository) Save(ctx context.Context, plan models.TripPlan) error {
	id, err := uuid.Parse(plan.ID)
	if err != nil {
		return fmt.Errorf("parse trip plan id %q: %w", plan.ID, err)
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal trip plan: %w", err)
	}

	const query = `
		INSERT INTO trip_plans (id, overall_score, payload, created_at)
		VALUES ($1, $2, $3::jsonb, $4)
		ON CONFLICT (id) DO UPDATE
		SET overall_score = EXCLUDED.overall_score,
		    payload = EXCLUDED.payload
	`

	if _, err := r.db.Exec(ctx, query, id, plan.Score.Overall, string(payload), plan.CreatedAt); err != nil {
		return fmt.Errorf("insert trip plan: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (models.TripPlan, error) {
	planID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		// a malformed id can never match a stored plan
		return models.TripPlan{}, derr.ErrPlanNotFound
	}

	const query = `
		SELECT payload
		FROM trip_plans
		WHERE id = $1
	`

	var payload []byte
	err = r.db.QueryRow(ctx, query, planID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.TripPlan{}, derr.ErrPlanNotFound
		}
		return models.TripPlan{}, fmt.Errorf("query trip plan by id: %w", err)
	}

	var plan models.TripPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return models.TripPlan{}, fmt.Errorf("unmarshal trip plan payload: %w", err)
	}
	plan.ID = planID.String()

	return plan, nil
}
