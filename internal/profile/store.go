package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lookup retrieves a candidate profile by user ID.
type Lookup interface {
	Get(ctx context.Context, userID string) (CandidateProfile, error)
}

// Store implements Lookup against PostgreSQL. Profile data is spread over
// three tables: profiles (account identity), user_preferences (roles,
// skills, locations, industries) and user_personal_info (self-reported
// details). Personal info wins over account identity on overlap.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get assembles the candidate profile for userID. Missing rows in any of
// the three tables are tolerated; only a malformed ID or a query failure
// errors.
func (s *Store) Get(ctx context.Context, userID string) (CandidateProfile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return CandidateProfile{}, fmt.Errorf("invalid user ID %q: %w", userID, err)
	}

	var acctFirst, acctLast, acctEmail *string
	err = s.pool.QueryRow(ctx,
		`SELECT first_name, last_name, email FROM profiles WHERE id = $1`,
		id,
	).Scan(&acctFirst, &acctLast, &acctEmail)
	if err != nil && err != pgx.ErrNoRows {
		return CandidateProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	var roles, skills, locations, industries []string
	err = s.pool.QueryRow(ctx,
		`SELECT COALESCE(roles, '{}'), COALESCE(skills_prefer, '{}'),
		        COALESCE(locations, '{}'), COALESCE(industries_prefer, '{}')
		 FROM user_preferences WHERE user_id = $1`,
		id,
	).Scan(&roles, &skills, &locations, &industries)
	if err != nil && err != pgx.ErrNoRows {
		return CandidateProfile{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	var persFirst, persLast, persEmail, persLocation, workSummary, eduSummary *string
	err = s.pool.QueryRow(ctx,
		`SELECT first_name, last_name, email, location, work_history_summary, education_summary
		 FROM user_personal_info WHERE user_id = $1`,
		id,
	).Scan(&persFirst, &persLast, &persEmail, &persLocation, &workSummary, &eduSummary)
	if err != nil && err != pgx.ErrNoRows {
		return CandidateProfile{}, fmt.Errorf("failed to get personal info: %w", err)
	}

	first := coalesce(persFirst, acctFirst)
	last := coalesce(persLast, acctLast)
	email := coalesce(persEmail, acctEmail)
	name := strings.TrimSpace(first + " " + last)
	if name == "" && email != "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	rolesStr := strings.Join(roles, ", ")
	location := deref(persLocation)
	if location == "" {
		location = strings.Join(locations, ", ")
	}
	workHistory := deref(workSummary)
	if workHistory == "" {
		workHistory = rolesStr
	}
	if workHistory == "" {
		workHistory = "Not in database"
	}
	additional := ""
	if location != "" {
		additional = fmt.Sprintf("Location: %s", location)
	}

	return CandidateProfile{
		FullName:       name,
		Email:          email,
		CurrentTitle:   rolesStr,
		Skills:         strings.Join(skills, ", "),
		Location:       location,
		WorkHistory:    workHistory,
		Education:      deref(eduSummary),
		AdditionalInfo: additional,
		Interests:      industries,
	}, nil
}

func coalesce(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
