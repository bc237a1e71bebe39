//go:build integration

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"lifelink/pkg/domain"
	"lifelink/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	ctx   context.Context
	now   time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, &PostgresStoreSuite{pg: containers.NewPostgresContainer(t)})
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.store = NewPostgresStore(s.pg.Pool)
	s.Require().NoError(s.store.EnsureSchema(s.ctx))
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(s.ctx, "TRUNCATE donor_history")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestAppendAndList() {
	donorID := domain.NewUserID()

	donation := NewEntry(donorID, domain.NewRequestID(), KindDonation, "City Hospital", domain.BloodGroupOPos, s.now)
	noShow := NewEntry(donorID, domain.NewRequestID(), KindNoShow, "Apollo Hospital", domain.BloodGroupABNeg, s.now.Add(time.Hour))
	s.Require().NoError(s.store.Append(s.ctx, donation))
	s.Require().NoError(s.store.Append(s.ctx, noShow))

	entries, err := s.store.ListByDonor(s.ctx, donorID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Equal(noShow.ID, entries[0].ID)
	s.Equal(KindNoShow, entries[0].Kind)
	s.Equal("Apollo Hospital", entries[0].HospitalName)
	s.Equal(domain.BloodGroupABNeg, entries[0].BloodGroup)

	s.Equal(donation.ID, entries[1].ID)
	s.Equal(donorID, entries[1].DonorID)
	s.True(entries[1].OccurredAt.Equal(s.now))
}

func (s *PostgresStoreSuite) TestListUnknownDonor() {
	entries, err := s.store.ListByDonor(s.ctx, domain.NewUserID())
	s.Require().NoError(err)
	s.Empty(entries)
}
