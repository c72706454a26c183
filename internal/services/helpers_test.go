package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tourship/internal/models/db_models"
	"tourship/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db_models.AutoMigrate(db))
	return db
}

func newTestTripService(db *gorm.DB, mail MailService) TripServiceInterface {
	return NewTripService(
		repositories.NewTripRepository(db),
		repositories.NewAttractionRepository(db),
		repositories.NewUserRepository(db),
		mail,
	)
}

// mailRecorder captures outgoing mail in memory so tests can assert on
// what would have been sent.
type mailRecorder struct {
	resets        []resetMail
	confirmations []confirmationMail
	decisions     []decisionMail
	cancellations []cancellationMail
}

type resetMail struct {
	to    string
	token string
}

type confirmationMail struct {
	to         string
	tripTitle  string
	people     int
	totalMinor int64
	currency   string
}

type decisionMail struct {
	to       string
	approved bool
	reason   string
}

type cancellationMail struct {
	to          string
	tripTitle   string
	refundMinor int64
	currency    string
}

var _ MailService = (*mailRecorder)(nil)

func (m *mailRecorder) SendPasswordReset(to, token string) error {
	m.resets = append(m.resets, resetMail{to: to, token: token})
	return nil
}

func (m *mailRecorder) SendBookingConfirmation(to, name, tripTitle string, people int, totalMinor int64, currency string, startDate int64) error {
	m.confirmations = append(m.confirmations, confirmationMail{
		to: to, tripTitle: tripTitle, people: people, totalMinor: totalMinor, currency: currency,
	})
	return nil
}

func (m *mailRecorder) SendVerificationDecision(to, name string, approved bool, reason string) error {
	m.decisions = append(m.decisions, decisionMail{to: to, approved: approved, reason: reason})
	return nil
}

func (m *mailRecorder) SendTripCancelled(to, name, tripTitle string, refundMinor int64, currency string) error {
	m.cancellations = append(m.cancellations, cancellationMail{
		to: to, tripTitle: tripTitle, refundMinor: refundMinor, currency: currency,
	})
	return nil
}

func seedUser(t *testing.T, db *gorm.DB, role db_models.Role) *db_models.User {
	t.Helper()
	u := &db_models.User{
		Name:         fmt.Sprintf("%s user", role),
		Email:        fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]),
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedTourist(t *testing.T, db *gorm.DB) *db_models.User {
	return seedUser(t, db, db_models.RoleTourist)
}

func seedOrganiser(t *testing.T, db *gorm.DB, verified bool) *db_models.User {
	t.Helper()
	u := seedUser(t, db, db_models.RoleOrganiser)
	status := db_models.VerificationPending
	if verified {
		status = db_models.VerificationApproved
	}
	u.OrganiserProfile = datatypes.NewJSONType(db_models.OrganiserProfile{
		CompanyName:  "Sunrise Tours",
		Verification: db_models.Verification{Status: status},
	})
	require.NoError(t, db.Save(u).Error)
	return u
}

func seedGuide(t *testing.T, db *gorm.DB, verified bool) *db_models.User {
	t.Helper()
	u := seedUser(t, db, db_models.RoleGuide)
	status := db_models.VerificationPending
	if verified {
		status = db_models.VerificationApproved
	}
	u.GuideProfile = datatypes.NewJSONType(db_models.GuideProfile{
		LicenseNumber: "G-1001",
		Languages:     []string{"en"},
		Verification:  db_models.Verification{Status: status},
	})
	require.NoError(t, db.Save(u).Error)
	return u
}

func seedAttraction(t *testing.T, db *gorm.DB) *db_models.Attraction {
	t.Helper()
	a := &db_models.Attraction{
		Name:     "Angkor Wat",
		Slug:     "angkor-wat-" + uuid.NewString()[:8],
		City:     "Siem Reap",
		Country:  "Cambodia",
		Category: "temple",
		Status:   db_models.AttractionVisible,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func reloadTrip(t *testing.T, db *gorm.DB, id string) *db_models.Trip {
	t.Helper()
	var trip db_models.Trip
	require.NoError(t, db.First(&trip, "id = ?", id).Error)
	return &trip
}

func reloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *db_models.User {
	t.Helper()
	var u db_models.User
	require.NoError(t, db.First(&u, "id = ?", id).Error)
	return &u
}

func uuidFrom(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
