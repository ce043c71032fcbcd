package service

import (
	"context"
	"log/slog"
	"time"

	"fitnessfinder/internal/cache"
	"fitnessfinder/internal/models"
	"fitnessfinder/internal/observability"
	"fitnessfinder/internal/repository"
	"fitnessfinder/internal/validation"

	"gorm.io/gorm"
)

// SessionService provides the session consistency operations (add, join,
// unjoin, delete) and the session-card read-side aggregation.
//
// Join, unjoin, and delete hold a per-session mutex for their whole
// check-then-write sequence: two concurrent joins on the same session cannot
// both pass the existence check. The unique index on (profile, session_id)
// backs the same invariant at the store level.
type SessionService struct {
	db                *gorm.DB
	sessionRepo       repository.SessionRepository
	profileRepo       repository.ProfileRepository
	interestRepo      repository.InterestRepository
	participationRepo repository.ParticipationRepository
	locks             keyedLocks
}

// NewSessionService returns a new SessionService. db may be nil in unit
// tests; mutations then run against the injected repositories directly.
func NewSessionService(db *gorm.DB, sessionRepo repository.SessionRepository, profileRepo repository.ProfileRepository, interestRepo repository.InterestRepository, participationRepo repository.ParticipationRepository) *SessionService {
	return &SessionService{
		db:                db,
		sessionRepo:       sessionRepo,
		profileRepo:       profileRepo,
		interestRepo:      interestRepo,
		participationRepo: participationRepo,
	}
}

// AddSessionInput is the argument record for session creation.
type AddSessionInput struct {
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Interests   []string  `json:"interests"`
	SkillLevel  string    `json:"skillLevel"`
	Location    string    `json:"location"`
	Owner       string    `json:"owner"`
}

// AddSession creates a session with its ownership row, interest tags, and
// the owner's participant display row, all inside one transaction. All
// validation happens before the first insert, so a rejected call never
// leaves an orphan session behind. The created session is returned so
// callers learn the generated id.
func (s *SessionService) AddSession(ctx context.Context, in AddSessionInput) (session *models.Session, err error) {
	ctx, span := observability.StartMethodSpan(ctx, "Sessions.add")
	defer func() {
		observability.EndMethodSpan(span, err)
		observability.ObserveMethod("Sessions.add", err)
	}()

	if err := validation.ValidateSessionTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateInterests(in.Interests); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSkillLevel(in.SkillLevel); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	owner, err := s.profileRepo.GetByEmail(ctx, in.Owner)
	if err != nil {
		return nil, err
	}

	interests := validation.NormalizeInterests(in.Interests)
	session = &models.Session{
		Title:       in.Title,
		Date:        in.Date,
		Description: in.Description,
		SkillLevel:  in.SkillLevel,
		Location:    in.Location,
	}

	err = s.inTx(ctx, func(r txRepos) error {
		if err := r.sessions.Create(ctx, session); err != nil {
			return err
		}
		if err := r.participations.CreateOwner(ctx, &models.ProfileSession{
			Profile:   owner.Email,
			SessionID: session.ID,
			Session:   session.Title,
		}); err != nil {
			return err
		}
		if err := r.sessions.ReplaceInterests(ctx, session.ID, interests); err != nil {
			return err
		}
		if err := r.interests.Upsert(ctx, interests...); err != nil {
			return err
		}
		return r.participations.AddParticipantName(ctx, &models.SessionParticipant{
			SessionID:   session.ID,
			Profile:     owner.Email,
			Participant: owner.FullName(),
		})
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateProfileCard(ctx, owner.Email)
	return session, nil
}

// Join adds the profile to the session. Joining a session twice, or one the
// profile created, is a conflict.
func (s *SessionService) Join(ctx context.Context, email, sessionID string) (err error) {
	ctx, span := observability.StartMethodSpan(ctx, "Sessions.join")
	defer func() {
		observability.EndMethodSpan(span, err)
		observability.ObserveMethod("Sessions.join", err)
	}()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	owner, err := s.participationRepo.GetOwner(ctx, sessionID)
	if err != nil {
		return err
	}
	if owner != nil && owner.Profile == email {
		return models.NewConflictError("You already joined this session")
	}
	existing, err := s.participationRepo.GetParticipation(ctx, email, sessionID)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewConflictError("You already joined this session")
	}

	err = s.inTx(ctx, func(r txRepos) error {
		// Clear any stale row first so a retried join stays idempotent.
		if err := r.participations.DeleteParticipation(ctx, email, sessionID); err != nil {
			return err
		}
		if err := r.participations.CreateParticipation(ctx, &models.ProfileParticipation{
			Profile:   email,
			SessionID: sessionID,
			Session:   session.Title,
		}); err != nil {
			return err
		}
		return r.participations.AddParticipantName(ctx, &models.SessionParticipant{
			SessionID:   sessionID,
			Profile:     email,
			Participant: profile.FullName(),
		})
	})
	if err != nil {
		return err
	}

	cache.InvalidateProfileCard(ctx, email)
	cache.InvalidateSessionCard(ctx, sessionID)
	return nil
}

// Unjoin removes the profile's participation row and its participant display
// row. Unjoining a session the profile never joined is a NotFound error.
func (s *SessionService) Unjoin(ctx context.Context, email, sessionID string) (err error) {
	ctx, span := observability.StartMethodSpan(ctx, "Sessions.unjoin")
	defer func() {
		observability.EndMethodSpan(span, err)
		observability.ObserveMethod("Sessions.unjoin", err)
	}()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	existing, err := s.participationRepo.GetParticipation(ctx, email, sessionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.NewNotFoundError("Participation in session", sessionID)
	}

	err = s.inTx(ctx, func(r txRepos) error {
		if err := r.participations.DeleteParticipation(ctx, email, sessionID); err != nil {
			return err
		}
		return r.participations.RemoveParticipantName(ctx, email, sessionID)
	})
	if err != nil {
		return err
	}

	cache.InvalidateProfileCard(ctx, email)
	cache.InvalidateSessionCard(ctx, sessionID)
	return nil
}

// Delete removes the session and cascades over every join row referencing
// it. Only the session's creator may delete it; the check lives here, not in
// the presentation layer, so it cannot be bypassed by a direct call.
func (s *SessionService) Delete(ctx context.Context, requester, sessionID string) (err error) {
	ctx, span := observability.StartMethodSpan(ctx, "Sessions.delete")
	defer func() {
		observability.EndMethodSpan(span, err)
		observability.ObserveMethod("Sessions.delete", err)
	}()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return err
	}
	owner, err := s.participationRepo.GetOwner(ctx, sessionID)
	if err != nil {
		return err
	}
	if owner == nil || owner.Profile != requester {
		return models.NewUnauthorizedError("Only the session creator can delete a session")
	}

	// Collect affected profiles before the rows disappear.
	participations, err := s.participationRepo.GetParticipationsBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, func(r txRepos) error {
		// Parent first: if the cascade is ever interrupted, the leftovers
		// are orphaned child rows, which the aggregators already skip.
		if err := r.sessions.Delete(ctx, sessionID); err != nil {
			return err
		}
		if err := r.participations.DeleteOwnerBySession(ctx, sessionID); err != nil {
			return err
		}
		if err := r.sessions.DeleteInterests(ctx, sessionID); err != nil {
			return err
		}
		if err := r.participations.DeleteParticipantNamesBySession(ctx, sessionID); err != nil {
			return err
		}
		return r.participations.DeleteParticipationsBySession(ctx, sessionID)
	})
	if err != nil {
		return err
	}

	cache.InvalidateSessionCard(ctx, sessionID)
	cache.InvalidateProfileCard(ctx, owner.Profile)
	for _, p := range participations {
		cache.InvalidateProfileCard(ctx, p.Profile)
	}
	return nil
}

// Card reconstructs the denormalized session card: scalar fields, interest
// names, and creator/participant names resolved from canonical profiles at
// read time. Dangling references are skipped and logged, never fatal.
func (s *SessionService) Card(ctx context.Context, sessionID string) (*models.SessionCard, error) {
	if card, ok := cache.GetSessionCard(ctx, sessionID); ok {
		return card, nil
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	card, err := s.buildCard(ctx, session)
	if err != nil {
		return nil, err
	}
	cache.SetSessionCard(ctx, card)
	return card, nil
}

func (s *SessionService) buildCard(ctx context.Context, session *models.Session) (*models.SessionCard, error) {
	interests, err := s.sessionRepo.GetInterests(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	card := &models.SessionCard{
		ID:               session.ID,
		Title:            session.Title,
		Date:             session.Date,
		Description:      session.Description,
		SkillLevel:       session.SkillLevel,
		Location:         session.Location,
		Interests:        interests,
		ParticipantNames: []string{},
	}

	owner, err := s.participationRepo.GetOwner(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		if name, ok := s.resolveName(ctx, owner.Profile); ok {
			card.CreatorName = name
		}
	}

	participations, err := s.participationRepo.GetParticipationsBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range participations {
		if name, ok := s.resolveName(ctx, p.Profile); ok {
			card.ParticipantNames = append(card.ParticipantNames, name)
		}
	}
	return card, nil
}

// resolveName formats a profile's display name, skipping dangling references.
func (s *SessionService) resolveName(ctx context.Context, email string) (string, bool) {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		observability.Logger.WarnContext(ctx, "skipping dangling profile reference",
			slog.String("email", email))
		return "", false
	}
	return profile.FullName(), true
}

// ListCards returns a card for every session.
func (s *SessionService) ListCards(ctx context.Context) ([]models.SessionCard, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]models.SessionCard, 0, len(sessions))
	for i := range sessions {
		card, err := s.buildCard(ctx, &sessions[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// FilterCards returns cards for sessions tagged with at least one of the
// given interests.
func (s *SessionService) FilterCards(ctx context.Context, interests []string) ([]models.SessionCard, error) {
	names := validation.NormalizeInterests(interests)
	if len(names) == 0 {
		return s.ListCards(ctx)
	}
	ids, err := s.sessionRepo.FindIDsByInterests(ctx, names)
	if err != nil {
		return nil, err
	}
	cards := make([]models.SessionCard, 0, len(ids))
	for _, id := range ids {
		session, err := s.sessionRepo.GetByID(ctx, id)
		if err != nil {
			observability.Logger.WarnContext(ctx, "skipping dangling session reference",
				slog.String("session_id", id))
			continue
		}
		card, err := s.buildCard(ctx, session)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// txRepos bundles the transaction-bound repositories handed to mutation
// closures.
type txRepos struct {
	sessions       repository.SessionRepository
	profiles       repository.ProfileRepository
	interests      repository.InterestRepository
	participations repository.ParticipationRepository
}

func (s *SessionService) inTx(ctx context.Context, fn func(txRepos) error) error {
	if s.db == nil {
		return fn(txRepos{
			sessions:       s.sessionRepo,
			profiles:       s.profileRepo,
			interests:      s.interestRepo,
			participations: s.participationRepo,
		})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos{
			sessions:       s.sessionRepo.WithTx(tx),
			profiles:       s.profileRepo.WithTx(tx),
			interests:      s.interestRepo.WithTx(tx),
			participations: s.participationRepo.WithTx(tx),
		})
	})
}
