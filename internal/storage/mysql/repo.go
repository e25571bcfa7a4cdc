package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"

	"monopoly_report/internal/domain"
)

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	x := int(n.Int64)
	return &x
}

// housesPrefix reads a rent_with_houses column. The first entry that is not
// a whole number ends the list, so a damaged row fails validation instead
// of reporting a zero rent.
func housesPrefix(b []byte) []int {
	if len(b) == 0 {
		return nil
	}
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil || raw == nil {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, it := range raw {
		f, ok := it.(float64)
		if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			break
		}
		out = append(out, int(f))
	}
	return out
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertRecord(ctx context.Context, position int, p domain.PropertyRecord) error {
	var houses any
	if p.RentWithHouses != nil {
		b, err := json.Marshal(p.RentWithHouses)
		if err != nil {
			return err
		}
		houses = string(b)
	}
	_, err := r.db.ExecContext(ctx, upsertRecordSQL,
		position,
		p.Name,
		p.Color,
		valInt(p.Rent),
		valInt(p.BuildCost),
		houses,
		valInt(p.RentWithHotel),
		valInt(p.SiteLocation),
	)
	return err
}

func (r *Repo) DeleteFrom(ctx context.Context, from int) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteFromSQL, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LoadRecords implements domain.RecordSource. Any query failure makes the
// whole source unavailable; a bad rent_with_houses value only affects its row.
func (r *Repo) LoadRecords(ctx context.Context) ([]domain.PropertyRecord, error) {
	rows, err := r.db.QueryContext(ctx, loadRecordsSQL)
	if err != nil {
		return nil, domain.SourceError("query properties", err)
	}
	defer rows.Close()

	var out []domain.PropertyRecord
	for rows.Next() {
		var p domain.PropertyRecord
		var rent, cost, hotel, site sql.NullInt64
		var houses []byte
		if err := rows.Scan(&p.Name, &p.Color, &rent, &cost, &houses, &hotel, &site); err != nil {
			return nil, domain.SourceError("scan properties", err)
		}
		p.Rent = ptrInt(rent)
		p.BuildCost = ptrInt(cost)
		p.RentWithHotel = ptrInt(hotel)
		p.SiteLocation = ptrInt(site)
		p.RentWithHouses = housesPrefix(houses)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.SourceError("iterate properties", err)
	}
	if out == nil {
		out = []domain.PropertyRecord{}
	}
	return out, nil
}
