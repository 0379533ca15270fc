package bodycomp

import (
	"context"
	"fmt"
	"time"

	"github.com/dkovacev/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type RangeParams struct {
	UserID int
	From   *time.Time
	To     *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddWeightLog(ctx context.Context, weightLog WeightLog) (_ *WeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodycomp.addWeightLog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", weightLog.UserID))

	if weightLog.LoggedAt.IsZero() {
		weightLog.LoggedAt = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO weight_logs (user_id, weight, body_fat_percentage, visceral_fat, notes, logged_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`,
		weightLog.UserID, weightLog.Weight, weightLog.BodyFatPercentage,
		weightLog.VisceralFat, weightLog.Notes, weightLog.LoggedAt,
	).Scan(&weightLog.ID)
	if err != nil {
		return nil, fmt.Errorf("insert weight log: %w", err)
	}

	span.SetAttributes(attribute.Int("weight_log.id", weightLog.ID))
	return &weightLog, nil
}

func (r *Repo) ListWeightLogs(ctx context.Context, params RangeParams) (_ []WeightLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodycomp.listWeightLogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, weight, body_fat_percentage, visceral_fat, notes, logged_at
			FROM weight_logs
			WHERE user_id = $1
			AND ($2::timestamp IS NULL OR logged_at >= $2)
			AND ($3::timestamp IS NULL OR logged_at <= $3)
		ORDER BY logged_at;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	weightLogs := make([]WeightLog, 0)
	for rows.Next() {
		var wl WeightLog
		var notes *string
		if err := rows.Scan(
			&wl.ID, &wl.UserID, &wl.Weight, &wl.BodyFatPercentage,
			&wl.VisceralFat, &notes, &wl.LoggedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if notes != nil {
			wl.Notes = *notes
		}
		weightLogs = append(weightLogs, wl)
	}

	return weightLogs, nil
}

func (r *Repo) AddBloodworkLog(ctx context.Context, bloodworkLog BloodworkLog) (_ *BloodworkLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodycomp.addBloodworkLog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", bloodworkLog.UserID))

	if bloodworkLog.TestDate.IsZero() {
		bloodworkLog.TestDate = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO bloodwork_logs (
				user_id, test_date,
				testosterone_total, testosterone_free, shbg, oestradiol, prolactin,
				hba1c, glucose_fasting, insulin_fasting, homa_index,
				notes, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at;`,
		bloodworkLog.UserID, bloodworkLog.TestDate,
		bloodworkLog.TestosteroneTotal, bloodworkLog.TestosteroneFree,
		bloodworkLog.SHBG, bloodworkLog.Oestradiol, bloodworkLog.Prolactin,
		bloodworkLog.HbA1c, bloodworkLog.GlucoseFasting,
		bloodworkLog.InsulinFasting, bloodworkLog.HomaIndex,
		bloodworkLog.Notes, time.Now(),
	).Scan(&bloodworkLog.ID, &bloodworkLog.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert bloodwork log: %w", err)
	}

	span.SetAttributes(attribute.Int("bloodwork_log.id", bloodworkLog.ID))
	return &bloodworkLog, nil
}

func (r *Repo) ListBloodworkLogs(ctx context.Context, params RangeParams) (_ []BloodworkLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodycomp.listBloodworkLogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, test_date,
				testosterone_total, testosterone_free, shbg, oestradiol, prolactin,
				hba1c, glucose_fasting, insulin_fasting, homa_index,
				notes, created_at
			FROM bloodwork_logs
			WHERE user_id = $1
			AND ($2::timestamp IS NULL OR test_date >= $2)
			AND ($3::timestamp IS NULL OR test_date <= $3)
		ORDER BY test_date;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	bloodworkLogs := make([]BloodworkLog, 0)
	for rows.Next() {
		var bl BloodworkLog
		var notes *string
		if err := rows.Scan(
			&bl.ID, &bl.UserID, &bl.TestDate,
			&bl.TestosteroneTotal, &bl.TestosteroneFree, &bl.SHBG,
			&bl.Oestradiol, &bl.Prolactin,
			&bl.HbA1c, &bl.GlucoseFasting, &bl.InsulinFasting, &bl.HomaIndex,
			&notes, &bl.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if notes != nil {
			bl.Notes = *notes
		}
		bloodworkLogs = append(bloodworkLogs, bl)
	}

	return bloodworkLogs, nil
}
