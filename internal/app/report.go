package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"monopoly_report/internal/domain"
)

// Policy decides what a malformed record does to the pass.
type Policy string

const (
	PolicySkip  Policy = "skip"  // drop the record, log it, keep going
	PolicyAbort Policy = "abort" // emit nothing and return the first error
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicySkip:
		return PolicySkip, nil
	case PolicyAbort:
		return PolicyAbort, nil
	}
	return "", fmt.Errorf("unknown data error policy %q", s)
}

type ReportService struct {
	workers int
	policy  Policy
}

func NewReportService(workers int, policy Policy) *ReportService {
	if workers <= 0 {
		workers = 1
	}
	if policy == "" {
		policy = PolicySkip
	}
	return &ReportService{workers: workers, policy: policy}
}

// derived holds everything one record contributes to both outputs.
type derived struct {
	rec      domain.PropertyRecord
	block    string
	rent     int
	cost     int
	hotel    int
	houses   []string
	complete string
	distance string
}

// Build runs one pass over records. Derivation may fan out across workers,
// but the sink and the display only see records in source order, and only
// from the calling goroutine.
func (s *ReportService) Build(ctx context.Context, records []domain.PropertyRecord, sink domain.NarrativeSink, display domain.Display) (domain.Summary, error) {
	sum := domain.Summary{Total: len(records)}

	results := make([]*derived, len(records))
	failures := make([]*domain.FieldError, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range records {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := derive(records[i])
			if err != nil {
				var fe *domain.FieldError
				if !errors.As(err, &fe) {
					return err
				}
				fe.Index = i
				failures[i] = fe
				return nil
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}

	for _, fe := range failures {
		if fe != nil {
			sum.Skipped = append(sum.Skipped, *fe)
		}
	}
	if len(sum.Skipped) > 0 && s.policy == PolicyAbort {
		return sum, &sum.Skipped[0]
	}

	container := display.CreateSection(domain.KindContainer, "")
	display.AppendChild(container, display.CreateSection(domain.KindHeading, "Monopoly Properties"))
	display.AppendChild(container, display.CreateSection(domain.KindParagraph, "This list is not including any of the utility properties."))

	for i, d := range results {
		if d == nil {
			fe := failures[i]
			log.Warn().
				Int("index", fe.Index).
				Str("name", fe.Name).
				Str("field", fe.Field).
				Str("reason", fe.Reason).
				Msg("skipping malformed property record")
			continue
		}
		if err := sink.Emit(d.block); err != nil {
			return sum, fmt.Errorf("emit narrative for %q: %w", d.rec.Name, err)
		}
		display.AppendChild(container, section(display, d))
		sum.Rendered++
	}

	display.AppendChild(display.Root(), container)
	return sum, nil
}

// derive validates a record and computes its text. Pure: safe to run concurrently.
func derive(p domain.PropertyRecord) (*derived, error) {
	if p.Name == "" {
		return nil, fieldErr(p, "name", "missing")
	}
	if p.Color == "" {
		return nil, fieldErr(p, "color", "missing")
	}
	rent, err := amount(p, "rent", p.Rent)
	if err != nil {
		return nil, err
	}
	cost, err := amount(p, "buildCost", p.BuildCost)
	if err != nil {
		return nil, err
	}
	hotel, err := amount(p, "rentWithHotel", p.RentWithHotel)
	if err != nil {
		return nil, err
	}
	houses, err := houseLines(p)
	if err != nil {
		return nil, err
	}
	housesLog, err := RentWithHousesLog(p)
	if err != nil {
		return nil, err
	}
	complete, err := CompleteColorRent(p)
	if err != nil {
		return nil, err
	}
	distance, err := DistanceFromGo(p)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(introSentence(p) + "\n")
	b.WriteString(baseRentSentence(rent) + "\n")
	b.WriteString(buildCostSentence(cost) + "\n")
	b.WriteString(housesLog)
	b.WriteString(hotelSentence(hotel) + "\n")
	b.WriteString(hotelPrerequisiteSentence() + "\n")
	b.WriteString(complete + "\n")
	b.WriteString(distance + "\n")

	return &derived{
		rec:      p,
		block:    b.String(),
		rent:     rent,
		cost:     cost,
		hotel:    hotel,
		houses:   houses,
		complete: complete,
		distance: distance,
	}, nil
}

func section(d domain.Display, r *derived) domain.NodeHandle {
	sec := d.CreateSection(domain.KindProperty, "")
	para := func(text string) {
		d.AppendChild(sec, d.CreateSection(domain.KindParagraph, text))
	}
	d.AppendChild(sec, d.CreateSection(domain.KindSubheading, r.rec.Name))
	para(colorSentence(r.rec))
	para(baseRentSentence(r.rent))
	para(buildCostSentence(r.cost))
	d.AppendChild(sec, houseList(d, r.houses))
	para(hotelSentence(r.hotel))
	para(hotelPrerequisiteSentence())
	para(r.complete)
	para(r.distance)
	return sec
}
