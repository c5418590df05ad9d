package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/formbureau/formdesk/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store interface {
	CreateActor(ctx context.Context, in ActorInput) (models.Actor, error)
	GetActor(ctx context.Context, id uuid.UUID) (models.Actor, error)
	UpdateActorGrade(ctx context.Context, id uuid.UUID, grade int) (models.Actor, error)
	CreateForm(ctx context.Context, in FormInput) (models.Form, error)
	GetForm(ctx context.Context, id uuid.UUID) (models.Form, error)
	ListForms(ctx context.Context, filter ListFormsFilter) ([]models.Form, error)
	MarkFormSigned(ctx context.Context, id uuid.UUID) (models.Form, error)
	Ping(ctx context.Context) error
}

type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

type ActorInput struct {
	ID    uuid.UUID
	Name  string
	Grade int
}

type FormInput struct {
	ID        uuid.UUID
	Kind      string
	Target    string
	SignGrade int
	ExecGrade int
}

type ListFormsFilter struct {
	Kind   string
	Signed *bool
	Limit  int
	Offset int
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActor(row rowScanner) (models.Actor, error) {
	var actor models.Actor
	if err := row.Scan(
		&actor.ID,
		&actor.Name,
		&actor.Grade,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	); err != nil {
		return models.Actor{}, err
	}
	return actor, nil
}

func scanForm(row rowScanner) (models.Form, error) {
	var form models.Form
	if err := row.Scan(
		&form.ID,
		&form.Kind,
		&form.Target,
		&form.SignGrade,
		&form.ExecGrade,
		&form.Signed,
		&form.CreatedAt,
		&form.UpdatedAt,
	); err != nil {
		return models.Form{}, err
	}
	return form, nil
}

func (s *PGStore) CreateActor(ctx context.Context, in ActorInput) (models.Actor, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	query := `
		INSERT INTO actors (id, name, grade)
		VALUES ($1,$2,$3)
		RETURNING id, name, grade, created_at, updated_at
	`
	actor, err := scanActor(s.db.QueryRowContext(ctx, query, in.ID, in.Name, in.Grade))
	if err != nil {
		return models.Actor{}, fmt.Errorf("insert actor: %w", err)
	}
	return actor, nil
}

func (s *PGStore) GetActor(ctx context.Context, id uuid.UUID) (models.Actor, error) {
	const query = `
		SELECT id, name, grade, created_at, updated_at
		FROM actors WHERE id=$1
	`
	actor, err := scanActor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Actor{}, ErrNotFound
		}
		return models.Actor{}, fmt.Errorf("get actor: %w", err)
	}
	return actor, nil
}

func (s *PGStore) UpdateActorGrade(ctx context.Context, id uuid.UUID, grade int) (models.Actor, error) {
	const query = `
		UPDATE actors
		SET grade=$2, updated_at=NOW()
		WHERE id=$1
		RETURNING id, name, grade, created_at, updated_at
	`
	actor, err := scanActor(s.db.QueryRowContext(ctx, query, id, grade))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Actor{}, ErrNotFound
		}
		return models.Actor{}, fmt.Errorf("update actor grade: %w", err)
	}
	return actor, nil
}

func (s *PGStore) CreateForm(ctx context.Context, in FormInput) (models.Form, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	query := `
		INSERT INTO forms (id, kind, target, sign_grade, exec_grade, signed)
		VALUES ($1,$2,$3,$4,$5,false)
		RETURNING id, kind, target, sign_grade, exec_grade, signed, created_at, updated_at
	`
	form, err := scanForm(s.db.QueryRowContext(ctx, query, in.ID, in.Kind, in.Target, in.SignGrade, in.ExecGrade))
	if err != nil {
		return models.Form{}, fmt.Errorf("insert form: %w", err)
	}
	return form, nil
}

func (s *PGStore) GetForm(ctx context.Context, id uuid.UUID) (models.Form, error) {
	const query = `
		SELECT id, kind, target, sign_grade, exec_grade, signed, created_at, updated_at
		FROM forms WHERE id=$1
	`
	form, err := scanForm(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Form{}, ErrNotFound
		}
		return models.Form{}, fmt.Errorf("get form: %w", err)
	}
	return form, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func (s *PGStore) ListForms(ctx context.Context, filter ListFormsFilter) ([]models.Form, error) {
	query := `
		SELECT id, kind, target, sign_grade, exec_grade, signed, created_at, updated_at
		FROM forms
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1
	if filter.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argPos)
		args = append(args, filter.Kind)
		argPos++
	}
	if filter.Signed != nil {
		query += fmt.Sprintf(" AND signed = $%d", argPos)
		args = append(args, *filter.Signed)
		argPos++
	}
	query += " ORDER BY created_at DESC"
	limit := normalizeLimit(filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", argPos)
	args = append(args, limit)
	argPos++
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	var forms []models.Form
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		forms = append(forms, form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forms: %w", err)
	}
	return forms, nil
}

// MarkFormSigned flips the signed flag in one statement so concurrent signers
// cannot interleave a read-modify-write. The flag is never reset once set.
func (s *PGStore) MarkFormSigned(ctx context.Context, id uuid.UUID) (models.Form, error) {
	const query = `
		UPDATE forms
		SET signed=true, updated_at=NOW()
		WHERE id=$1
		RETURNING id, kind, target, sign_grade, exec_grade, signed, created_at, updated_at
	`
	form, err := scanForm(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Form{}, ErrNotFound
		}
		return models.Form{}, fmt.Errorf("mark form signed: %w", err)
	}
	return form, nil
}

func (s *PGStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	return nil
}
