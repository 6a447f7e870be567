// Package service contains the events workflows: creating events, collecting responses and scoring them
package service

import (
	"context"
	"slices"
	"time"

	"meetgrid/internal/core/normalize"
	"meetgrid/internal/core/slots"
	"meetgrid/internal/core/tally"
	"meetgrid/internal/modkit/repokit"
	perr "meetgrid/internal/platform/errors"
	"meetgrid/internal/platform/logger"
	"meetgrid/internal/platform/net/http/bind"
	"meetgrid/internal/services/api/events/domain"
	"meetgrid/internal/services/api/events/repo"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDAlphabet is the character set of public event ids, url safe without escaping
const IDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// idAttempts bounds retries when a generated id is already taken
const idAttempts = 3

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	maxDays  int
	topN     int
	newID    func() (string, error)
	newRowID func() string

	retentionDays int
	purgeEvery    time.Duration
	purgeBatch    int
	now           func() time.Time
}

// Options control service behavior
type Options struct {
	// MaxDays caps the inclusive date range of an event, 0 means no cap
	MaxDays int
	// TopN is how many recommendations results carry
	TopN int
	// IDLength is the length of generated event ids
	IDLength int

	// RetentionDays is how long after its last day an event is kept, 0 keeps events forever
	RetentionDays int
	// PurgeEvery is the janitor period
	PurgeEvery time.Duration
	// PurgeBatch caps the events deleted per janitor pass
	PurgeBatch int

	// NewID overrides event id generation, tests pin it
	NewID func() (string, error)
	// Now overrides the clock
	Now func() time.Time
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("events.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("events.Service requires a non nil Repo binder")
	}
	if opt.TopN <= 0 {
		opt.TopN = tally.DefaultTopN
	}
	if opt.IDLength <= 0 {
		opt.IDLength = 10
	}
	newID := opt.NewID
	if newID == nil {
		n := opt.IDLength
		newID = func() (string, error) { return gonanoid.Generate(IDAlphabet, n) }
	}
	if opt.PurgeEvery <= 0 {
		opt.PurgeEvery = time.Hour
	}
	if opt.PurgeBatch <= 0 {
		opt.PurgeBatch = 500
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Svc{
		Repo:          binder.Bind(db),
		binder:        binder,
		db:            db,
		maxDays:       opt.MaxDays,
		topN:          opt.TopN,
		newID:         newID,
		newRowID:      uuid.NewString,
		retentionDays: opt.RetentionDays,
		purgeEvery:    opt.PurgeEvery,
		purgeBatch:    opt.PurgeBatch,
		now:           opt.Now,
	}
}

// CreateEvent validates the requested grid and stores it under a fresh id
func (s *Svc) CreateEvent(ctx context.Context, in domain.CreateEventInput) (domain.Event, error) {
	grid, err := gridOf(in)
	if err != nil {
		return domain.Event{}, err
	}
	if s.maxDays > 0 && grid.Days() > s.maxDays {
		return domain.Event{}, perr.Invalid("end_date", "an event may span at most %d days", s.maxDays)
	}
	title := normalize.Name(in.Title)
	if title == "" {
		return domain.Event{}, perr.Invalid("title", "title is required")
	}

	rec := domain.EventRecord{
		Title:       title,
		Description: normalize.Sanitize(in.Description),
		Grid:        grid,
	}
	for attempt := 1; ; attempt++ {
		rec.ID, err = s.newID()
		if err != nil {
			return domain.Event{}, perr.Wrap(err, perr.ErrorCodeUnknown, "generate event id")
		}
		out, err := s.Repo.CreateEvent(ctx, rec)
		if err == nil {
			logger.C(logger.WithEvent(ctx, out.ID)).Info().
				Int("days", out.Grid.Days()).
				Int("total_slots", out.Grid.TotalSlots()).
				Str("scheme", string(out.Grid.Scheme.Kind())).
				Msg("event created")
			return out.ToEvent(), nil
		}
		if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) || attempt >= idAttempts {
			return domain.Event{}, err
		}
		logger.C(ctx).Warn().Str("event_id", rec.ID).Int("attempt", attempt).Msg("event id collision, retrying")
	}
}

// gridOf parses the request into a validated slot geometry
func gridOf(in domain.CreateEventInput) (slots.Event, error) {
	start, err := slots.ParseDate(in.StartDate)
	if err != nil {
		return slots.Event{}, perr.Invalid("start_date", "start_date must be YYYY-MM-DD")
	}
	end, err := slots.ParseDate(in.EndDate)
	if err != nil {
		return slots.Event{}, perr.Invalid("end_date", "end_date must be YYYY-MM-DD")
	}
	scheme, err := slots.Parts{
		Mode:        in.Mode,
		TimeMode:    in.TimeMode,
		DayStart:    in.DayStart,
		DayEnd:      in.DayEnd,
		SlotMinutes: in.SlotMinutes,
		Custom:      in.CustomSlots,
	}.Scheme()
	if err != nil {
		return slots.Event{}, err
	}
	minDur := in.MinDurationMinutes
	if _, ok := scheme.(slots.Period); ok {
		minDur = slots.PeriodMinutes
	}
	ev := slots.Event{Start: start, End: end, Scheme: scheme, MinDurationMinutes: minDur}
	if err := ev.Validate(); err != nil {
		return slots.Event{}, err
	}
	return ev, nil
}

// GetEvent returns the event or a not found error
func (s *Svc) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	rec, err := s.Repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	return rec.ToEvent(), nil
}

// DeleteEvent removes the event together with its responses
func (s *Svc) DeleteEvent(ctx context.Context, id string) error {
	if err := s.Repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	logger.C(logger.WithEvent(ctx, id)).Info().Msg("event deleted")
	return nil
}

// Slots lists every slot of the event with its calendar reading
func (s *Svc) Slots(ctx context.Context, id string) ([]slots.Instant, error) {
	rec, err := s.Repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.Grid.Catalogue(), nil
}

// SubmitResponse stores the participant's selection, replacing any earlier one made with the same email
// the event is read in the same transaction so the range check and the write see one version of it
func (s *Svc) SubmitResponse(ctx context.Context, id string, in domain.SubmitResponseInput) (domain.Response, error) {
	email, err := emailOf(in.Email)
	if err != nil {
		return domain.Response{}, err
	}
	name := normalize.Name(in.Name)
	if name == "" {
		return domain.Response{}, perr.Invalid("name", "name is required")
	}
	picked := dedupe(in.Slots)

	var (
		out      domain.ResponseRecord
		inserted bool
	)
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		ev, err := r.GetEvent(ctx, id)
		if err != nil {
			return err
		}
		total := ev.Grid.TotalSlots()
		for _, idx := range picked {
			if idx < 0 || idx >= total {
				return perr.Invalid("slots", "slot %d is outside the event grid of %d slots", idx, total)
			}
		}
		out, inserted, err = r.UpsertResponse(ctx, domain.ResponseRecord{
			ID:      s.newRowID(),
			EventID: id,
			Name:    name,
			Email:   email,
			Slots:   picked,
		})
		return err
	})
	if err != nil {
		return domain.Response{}, err
	}
	logger.C(logger.WithEvent(ctx, id)).Info().
		Str("response_id", out.ID).
		Bool("inserted", inserted).
		Int("slots", len(out.Slots)).
		Msg("response saved")
	return out.ToResponse(inserted), nil
}

// emailOf normalizes raw and checks the result is an address, padding and case are not errors
func emailOf(raw string) (string, error) {
	email := normalize.Email(raw)
	if email == "" {
		return "", perr.Invalid("email", "email is required")
	}
	if err := bind.Get().Validator.Var(email, "email"); err != nil {
		return "", perr.Invalid("email", "email must be a valid email address")
	}
	return email, nil
}

// LookupResponse finds the submission made with in.Email, matching the way SubmitResponse keys it
func (s *Svc) LookupResponse(ctx context.Context, id string, in domain.LookupInput) (domain.Response, error) {
	email, err := emailOf(in.Email)
	if err != nil {
		return domain.Response{}, err
	}
	if _, err := s.Repo.GetEvent(ctx, id); err != nil {
		return domain.Response{}, err
	}
	rec, err := s.Repo.FindResponse(ctx, id, email)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Response{}, perr.NotFoundf("no response for this email")
		}
		return domain.Response{}, err
	}
	return rec.ToResponse(false), nil
}

// Participants lists every response without emails
func (s *Svc) Participants(ctx context.Context, id string) ([]domain.Participant, error) {
	if _, err := s.Repo.GetEvent(ctx, id); err != nil {
		return nil, err
	}
	rs, err := s.Repo.ListResponses(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Participant, len(rs))
	for i, r := range rs {
		out[i] = r.ToParticipant()
	}
	return out, nil
}

// Results aggregates all responses of the event
func (s *Svc) Results(ctx context.Context, id string) (domain.Results, error) {
	ev, err := s.Repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Results{}, err
	}
	rs, err := s.Repo.ListResponses(ctx, id)
	if err != nil {
		return domain.Results{}, err
	}

	start := time.Now()
	selections := make([][]int, len(rs))
	for i, r := range rs {
		selections[i] = r.Slots
	}
	res, err := tally.Compute(&ev.Grid, selections, s.topN)
	if err != nil {
		return domain.Results{}, err
	}

	out := domain.Results{
		EventID:           id,
		TotalSlots:        res.TotalSlots,
		TotalParticipants: res.TotalParticipants,
		Counts:            res.Counts,
		CommonSlots:       make([]slots.Instant, len(res.CommonSlots)),
		Recommended:       make([]domain.Recommendation, len(res.Recommended)),
		Available:         make([][]string, res.TotalSlots),
	}
	for i, idx := range res.CommonSlots {
		out.CommonSlots[i] = ev.Grid.Instant(idx)
	}
	for i, w := range res.Recommended {
		out.Recommended[i] = domain.Recommendation{
			StartIndex: w.Start,
			Size:       w.Size,
			MinCount:   w.MinCount,
			AvgCount:   w.AvgCount,
			First:      ev.Grid.Instant(w.Start),
			Last:       ev.Grid.Instant(w.End() - 1),
		}
	}
	for i := range out.Available {
		out.Available[i] = []string{}
	}
	for _, r := range rs {
		for _, idx := range r.Slots {
			if ev.Grid.Contains(idx) {
				out.Available[idx] = append(out.Available[idx], r.Name)
			}
		}
	}

	logger.C(logger.WithEvent(ctx, id)).Debug().
		Int("participants", res.TotalParticipants).
		Int("recommended", len(res.Recommended)).
		Dur("took", time.Since(start)).
		Msg("results computed")
	return out, nil
}

// dedupe returns the distinct values of in, ascending
func dedupe(in []int) []int {
	out := slices.Clone(in)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	return out
}
