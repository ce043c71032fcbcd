package service

import (
	"context"
	"log/slog"

	"fitnessfinder/internal/cache"
	"fitnessfinder/internal/models"
	"fitnessfinder/internal/observability"
	"fitnessfinder/internal/repository"
	"fitnessfinder/internal/validation"

	"gorm.io/gorm"
)

// ProfileService provides the profile consistency operations and the
// profile-card read-side aggregation.
type ProfileService struct {
	db                *gorm.DB
	profileRepo       repository.ProfileRepository
	interestRepo      repository.InterestRepository
	participationRepo repository.ParticipationRepository
}

// NewProfileService returns a new ProfileService. db may be nil in unit
// tests; mutations then run against the injected repositories directly,
// without a wrapping transaction.
func NewProfileService(db *gorm.DB, profileRepo repository.ProfileRepository, interestRepo repository.InterestRepository, participationRepo repository.ParticipationRepository) *ProfileService {
	return &ProfileService{
		db:                db,
		profileRepo:       profileRepo,
		interestRepo:      interestRepo,
		participationRepo: participationRepo,
	}
}

// UpdateProfileInput is the argument record for the profile update operation.
type UpdateProfileInput struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Bio       string   `json:"bio"`
	Picture   string   `json:"picture"`
	Year      string   `json:"year"`
	Interests []string `json:"interests"`
}

// CreateProfileInput is the argument record for profile creation (signup and
// seed). It mirrors UpdateProfileInput; creation is kept separate so a
// missing profile on update is an error, never an implicit upsert.
type CreateProfileInput struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Bio       string   `json:"bio"`
	Picture   string   `json:"picture"`
	Year      string   `json:"year"`
	Interests []string `json:"interests"`
}

// CreateProfile creates a profile with its interest rows and upserts any
// interest names not yet in the catalog.
func (s *ProfileService) CreateProfile(ctx context.Context, in CreateProfileInput) (*models.Profile, error) {
	var profile *models.Profile
	err := s.inTx(ctx, func(profiles repository.ProfileRepository, interestCatalog repository.InterestRepository, _ repository.ParticipationRepository) error {
		var txErr error
		profile, txErr = createProfile(ctx, profiles, interestCatalog, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateProfileTx runs profile creation against the caller's transaction, so
// signup can commit the profile and its login account atomically.
func (s *ProfileService) CreateProfileTx(ctx context.Context, tx *gorm.DB, in CreateProfileInput) (*models.Profile, error) {
	return createProfile(ctx, s.profileRepo.WithTx(tx), s.interestRepo.WithTx(tx), in)
}

// createProfile validates the input, rejects duplicate emails, and writes the
// profile with its interest rows through the given repositories.
func createProfile(ctx context.Context, profiles repository.ProfileRepository, interestCatalog repository.InterestRepository, in CreateProfileInput) (*models.Profile, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := profiles.GetByEmail(ctx, in.Email)
	if err != nil && !models.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("A profile already exists for this email")
	}

	interests := validation.NormalizeInterests(in.Interests)
	profile := &models.Profile{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Picture:   in.Picture,
		Year:      in.Year,
	}

	if err := profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	if err := profiles.ReplaceInterests(ctx, in.Email, interests); err != nil {
		return nil, err
	}
	if err := interestCatalog.Upsert(ctx, interests...); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile overwrites the profile's scalar fields and replaces its
// interest set. The profile must already exist; updating a missing profile
// is a NotFound error, never a silent no-op.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (err error) {
	ctx, span := observability.StartMethodSpan(ctx, "Profiles.update")
	defer func() {
		observability.EndMethodSpan(span, err)
		observability.ObserveMethod("Profiles.update", err)
	}()

	profile, err := s.profileRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	oldName := profile.FullName()
	profile.FirstName = in.FirstName
	profile.LastName = in.LastName
	profile.Bio = in.Bio
	profile.Picture = in.Picture
	profile.Year = in.Year
	interests := validation.NormalizeInterests(in.Interests)

	err = s.inTx(ctx, func(profiles repository.ProfileRepository, interestCatalog repository.InterestRepository, participations repository.ParticipationRepository) error {
		if err := profiles.Update(ctx, profile); err != nil {
			return err
		}
		if err := profiles.ReplaceInterests(ctx, in.Email, interests); err != nil {
			return err
		}
		if err := interestCatalog.Upsert(ctx, interests...); err != nil {
			return err
		}
		// The participant display cache stores formatted names; rewrite the
		// profile's rows when the name changed so session cards never go stale.
		if newName := profile.FullName(); newName != oldName {
			return participations.RefreshParticipantNames(ctx, in.Email, newName)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCards(ctx, in.Email)
	return nil
}

// invalidateCards drops the profile card and every session card the profile
// appears on (owned or joined).
func (s *ProfileService) invalidateCards(ctx context.Context, email string) {
	cache.InvalidateProfileCard(ctx, email)
	if owned, err := s.participationRepo.GetOwnedBy(ctx, email); err == nil {
		for _, o := range owned {
			cache.InvalidateSessionCard(ctx, o.SessionID)
		}
	}
	if joined, err := s.participationRepo.GetParticipationsByProfile(ctx, email); err == nil {
		for _, j := range joined {
			cache.InvalidateSessionCard(ctx, j.SessionID)
		}
	}
}

// Card reconstructs the denormalized profile card by joining the profile
// row with its interest, created-session, and joined-session rows.
func (s *ProfileService) Card(ctx context.Context, email string) (*models.ProfileCard, error) {
	if card, ok := cache.GetProfileCard(ctx, email); ok {
		return card, nil
	}

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	card, err := s.buildCard(ctx, profile)
	if err != nil {
		return nil, err
	}
	cache.SetProfileCard(ctx, card)
	return card, nil
}

func (s *ProfileService) buildCard(ctx context.Context, profile *models.Profile) (*models.ProfileCard, error) {
	interests, err := s.profileRepo.GetInterests(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	owned, err := s.participationRepo.GetOwnedBy(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	joined, err := s.participationRepo.GetParticipationsByProfile(ctx, profile.Email)
	if err != nil {
		return nil, err
	}

	created := make([]string, 0, len(owned))
	for _, o := range owned {
		created = append(created, o.Session)
	}
	participation := make([]string, 0, len(joined))
	for _, j := range joined {
		participation = append(participation, j.Session)
	}

	return &models.ProfileCard{
		Email:           profile.Email,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		Bio:             profile.Bio,
		Picture:         profile.Picture,
		Year:            profile.Year,
		Interests:       interests,
		CreatedSessions: created,
		JoinedSessions:  participation,
	}, nil
}

// ListCards returns a card for every profile.
func (s *ProfileService) ListCards(ctx context.Context) ([]models.ProfileCard, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.cardsFor(ctx, profiles)
}

// FilterCards returns cards for profiles tagged with at least one of the
// given interests.
func (s *ProfileService) FilterCards(ctx context.Context, interests []string) ([]models.ProfileCard, error) {
	names := validation.NormalizeInterests(interests)
	if len(names) == 0 {
		return s.ListCards(ctx)
	}
	emails, err := s.profileRepo.FindEmailsByInterests(ctx, names)
	if err != nil {
		return nil, err
	}

	cards := make([]models.ProfileCard, 0, len(emails))
	for _, email := range emails {
		profile, err := s.profileRepo.GetByEmail(ctx, email)
		if err != nil {
			// A dangling interest row; skip the entry rather than failing
			// the whole aggregation.
			observability.Logger.WarnContext(ctx, "skipping dangling profile reference",
				slog.String("email", email))
			continue
		}
		card, err := s.buildCard(ctx, profile)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

func (s *ProfileService) cardsFor(ctx context.Context, profiles []models.Profile) ([]models.ProfileCard, error) {
	cards := make([]models.ProfileCard, 0, len(profiles))
	for i := range profiles {
		card, err := s.buildCard(ctx, &profiles[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// Interests returns every interest name in the catalog.
func (s *ProfileService) Interests(ctx context.Context) ([]string, error) {
	return s.interestRepo.List(ctx)
}

// inTx runs fn inside a database transaction with transaction-bound
// repositories. With a nil db (unit tests) fn runs against the injected
// repositories as-is.
func (s *ProfileService) inTx(ctx context.Context, fn func(repository.ProfileRepository, repository.InterestRepository, repository.ParticipationRepository) error) error {
	if s.db == nil {
		return fn(s.profileRepo, s.interestRepo, s.participationRepo)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.profileRepo.WithTx(tx), s.interestRepo.WithTx(tx), s.participationRepo.WithTx(tx))
	})
}
