package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ordering/internal/adapters/out/postgres/partnerrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/pkg/errs"
)

type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
	t0         time.Time
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&partnerrepo.PartnerDTO{}, &partnerrepo.BonusEventDTO{}))
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE partners, partner_bonus_events").Error)
	suite.repository = partnerrepo.NewGormPartnerRepository(suite.db)
	suite.t0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAddGetUpdate() {
	// Given
	ctx := context.Background()
	p, err := partner.NewPartner(kernel.NewUUID(), "Budi", suite.t0)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	// When
	p.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, p))

	// Then
	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal("Budi", loaded.Name())
	suite.False(loaded.IsActive())
	suite.True(loaded.RegisteredAt().Equal(suite.t0))
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAndUpdate_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	p, err := partner.NewPartner(kernel.NewUUID(), "Ghost", suite.t0)
	suite.Require().NoError(err)
	suite.ErrorIs(suite.repository.Update(ctx, p), errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestListBonuses_HalfOpenWindow() {
	// Given
	ctx := context.Background()
	partnerID := kernel.NewUUID()
	window, err := kernel.NewTimeWindow(suite.t0, suite.t0.Add(24*time.Hour))
	suite.Require().NoError(err)

	atStart := suite.bonus(partnerID, 100, suite.t0)
	suite.bonus(partnerID, 200, suite.t0.Add(24*time.Hour))
	inside := suite.bonus(partnerID, 300, suite.t0.Add(5*time.Hour))
	suite.bonus(kernel.NewUUID(), 400, suite.t0.Add(time.Hour))

	// When
	bonuses, err := suite.repository.ListBonuses(ctx, partnerID, window)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(bonuses, 2)
	suite.Equal(atStart.ID(), bonuses[0].ID())
	suite.Equal(inside.ID(), bonuses[1].ID())
}

func (suite *PartnerRepositoryIntegrationTestSuite) bonus(partnerID kernel.UUID, minor int64, at time.Time) partner.BonusEvent {
	b, err := partner.NewBonusEvent(partnerID, kernel.MustMoney(minor), "peak hour", at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AddBonus(context.Background(), b))
	return b
}
