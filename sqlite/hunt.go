package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hhaeri/HydroAgent"
)

// Compile-time interface verification.
var _ hydroagent.HuntService = (*HuntService)(nil)

const huntColumns = "id, identifier, basin_name, latest_year, annual_report_url, gsp_url, error, hunted_at"

// HuntService implements hydroagent.HuntService using SQLite.
type HuntService struct {
	db *DB
}

// NewHuntService creates a new HuntService.
func NewHuntService(db *DB) *HuntService {
	return &HuntService{db: db}
}

// CreateHunt stores a hunt. Null result fields are stored as NULL. The
// identifier is stored trimmed so FindHunts can match it.
func (s *HuntService) CreateHunt(ctx context.Context, hunt *hydroagent.Hunt) error {
	hunt.Identifier = strings.TrimSpace(hunt.Identifier)
	if err := hunt.Validate(); err != nil {
		return err
	}

	if hunt.ID == "" {
		hunt.ID = uuid.New().String()
	}
	if hunt.HuntedAt.IsZero() {
		hunt.HuntedAt = time.Now()
	}
	hunt.HuntedAt = hunt.HuntedAt.UTC().Truncate(time.Second)

	r := hunt.Result
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hunts (`+huntColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, hunt.ID, hunt.Identifier,
		nullString(r.BasinName), nullInt(r.LatestYear), nullString(r.AnnualReportURL), nullString(r.GSPURL),
		hunt.Error, hunt.HuntedAt.Format(time.RFC3339))

	return err
}

// FindHuntByID retrieves a hunt by ID.
func (s *HuntService) FindHuntByID(ctx context.Context, id string) (*hydroagent.Hunt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+huntColumns+` FROM hunts WHERE id = ?`, id)

	hunt, err := scanHunt(row)
	if err == sql.ErrNoRows {
		return nil, hydroagent.Errorf(hydroagent.ENOTFOUND, "hunt not found")
	}
	if err != nil {
		return nil, err
	}
	return hunt, nil
}

// FindHunts retrieves hunts matching the filter, newest first.
func (s *HuntService) FindHunts(ctx context.Context, filter hydroagent.HuntFilter) ([]*hydroagent.Hunt, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + huntColumns + " FROM hunts WHERE 1=1")

	if filter.Identifier != nil {
		query.WriteString(" AND identifier = ? COLLATE NOCASE")
		args = append(args, strings.TrimSpace(*filter.Identifier))
	}

	query.WriteString(" ORDER BY hunted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hunts []*hydroagent.Hunt
	for rows.Next() {
		hunt, err := scanHunt(rows)
		if err != nil {
			return nil, err
		}
		hunts = append(hunts, hunt)
	}

	return hunts, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHunt(row scanner) (*hydroagent.Hunt, error) {
	var (
		hunt                   hydroagent.Hunt
		basinName, report, gsp sql.NullString
		year                   sql.NullInt64
		huntedAt               string
	)
	if err := row.Scan(&hunt.ID, &hunt.Identifier, &basinName, &year, &report, &gsp, &hunt.Error, &huntedAt); err != nil {
		return nil, err
	}

	var err error
	hunt.HuntedAt, err = parseRFC3339(huntedAt, "hunted_at")
	if err != nil {
		return nil, err
	}

	hunt.Result = &hydroagent.HuntResult{
		BasinName:       stringPtr(basinName),
		AnnualReportURL: stringPtr(report),
		GSPURL:          stringPtr(gsp),
	}
	if year.Valid {
		y := int(year.Int64)
		hunt.Result.LatestYear = &y
	}
	return &hunt, nil
}
