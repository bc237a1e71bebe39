package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"lifelink/internal/matching"
	"lifelink/internal/matching/handler/mocks"
	"lifelink/internal/request"
	"lifelink/internal/user"
	"lifelink/pkg/domain"
	dErrors "lifelink/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/matching-mocks.go -package=mocks Service

type MatchingHandlerSuite struct {
	suite.Suite
	router  chi.Router
	service *mocks.MockService
	now     time.Time
}

func TestMatchingHandlerSuite(t *testing.T) {
	suite.Run(t, new(MatchingHandlerSuite))
}

func (s *MatchingHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger, nil, staticIssuer{token: "signed-token"}).Register(s.router)
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

type staticIssuer struct {
	token string
}

func (i staticIssuer) GenerateAccessToken(uuid.UUID, time.Duration) (string, error) {
	return i.token, nil
}

func (s *MatchingHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MatchingHandlerSuite) sampleDonor() *user.User {
	return user.NewUser("Ravi", domain.RoleDonor, "ravi@example.com", "+91 9876543210", domain.BloodGroupOPos, user.Location{}, s.now)
}

func (s *MatchingHandlerSuite) sampleRequest() *request.Request {
	return request.New(domain.NewUserID(), "Meera", "City Hospital", domain.BloodGroupOPos, 2, domain.UrgencyHigh, false, time.Time{}, user.Location{}, s.now)
}

func (s *MatchingHandlerSuite) TestRegisterUser() {
	s.Run("returns the created account", func() {
		created := s.sampleDonor()
		s.service.EXPECT().RegisterUser(gomock.Any(), matching.RegisterUserParams{
			Name:       "Ravi",
			Role:       domain.RoleDonor,
			Email:      "ravi@example.com",
			Phone:      "+91 9876543210",
			BloodGroup: domain.BloodGroupOPos,
		}).Return(created, nil)

		w := s.do(http.MethodPost, "/users", registerUserRequest{
			Name:       "Ravi",
			Role:       "DONOR",
			Email:      "ravi@example.com",
			Phone:      "+91 9876543210",
			BloodGroup: "O+",
		})

		s.Equal(http.StatusCreated, w.Code)
		var resp userResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(created.ID, resp.ID)
		s.Equal(100, resp.TrustScore)
		s.Equal([]string{user.BadgeNewMember}, resp.Badges)
	})

	s.Run("rejects unknown roles before reaching the service", func() {
		w := s.do(http.MethodPost, "/users", registerUserRequest{
			Name: "Ravi", Role: "WIZARD", Email: "r@example.com", Phone: "1", BloodGroup: "O+",
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("rejects malformed bodies", func() {
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *MatchingHandlerSuite) TestGetUser() {
	s.Run("unknown user maps to 404", func() {
		id := domain.NewUserID()
		s.service.EXPECT().GetUser(gomock.Any(), id).Return(nil, dErrors.New(dErrors.CodeNotFound, "user not found"))

		w := s.do(http.MethodGet, "/users/"+id.String(), nil)
		s.Equal(http.StatusNotFound, w.Code)

		var resp map[string]string
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("not_found", resp["error"])
	})

	s.Run("malformed id maps to 400", func() {
		w := s.do(http.MethodGet, "/users/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *MatchingHandlerSuite) TestIssueToken() {
	s.Run("returns a bearer token for a known user", func() {
		u := s.sampleDonor()
		s.service.EXPECT().GetUser(gomock.Any(), u.ID).Return(u, nil)

		w := s.do(http.MethodPost, "/auth/token", tokenRequest{UserID: u.ID.String()})
		s.Equal(http.StatusOK, w.Code)

		var resp tokenResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("signed-token", resp.AccessToken)
		s.Equal(int64(86400), resp.ExpiresIn)
	})

	s.Run("unknown user maps to 404", func() {
		id := domain.NewUserID()
		s.service.EXPECT().GetUser(gomock.Any(), id).Return(nil, dErrors.New(dErrors.CodeNotFound, "user not found"))

		w := s.do(http.MethodPost, "/auth/token", tokenRequest{UserID: id.String()})
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("disabled issuance maps to 401", func() {
		router := chi.NewRouter()
		New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil).Register(router)

		payload, err := json.Marshal(tokenRequest{UserID: domain.NewUserID().String()})
		s.Require().NoError(err)
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *MatchingHandlerSuite) TestAccept() {
	s.Run("returns the updated request", func() {
		req := s.sampleRequest()
		donorID := domain.NewUserID()
		s.Require().NoError(req.Accept(donorID))

		s.service.EXPECT().AcceptRequest(gomock.Any(), req.ID, donorID).Return(req, nil)

		w := s.do(http.MethodPost, "/requests/"+req.ID.String()+"/accept", donorActionRequest{DonorID: donorID.String()})
		s.Equal(http.StatusOK, w.Code)

		var resp requestResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("ACCEPTED", resp.Status)
		s.Equal([]domain.UserID{donorID}, resp.AcceptedBy)
	})

	s.Run("capacity maps to 409", func() {
		req := s.sampleRequest()
		donorID := domain.NewUserID()
		s.service.EXPECT().AcceptRequest(gomock.Any(), req.ID, donorID).
			Return(nil, dErrors.New(dErrors.CodeAtCapacity, "every unit already has a donor"))

		w := s.do(http.MethodPost, "/requests/"+req.ID.String()+"/accept", donorActionRequest{DonorID: donorID.String()})
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("ineligible donor maps to 422", func() {
		req := s.sampleRequest()
		donorID := domain.NewUserID()
		s.service.EXPECT().AcceptRequest(gomock.Any(), req.ID, donorID).
			Return(nil, dErrors.New(dErrors.CodeIneligible, "donor in cooldown, 60 days remaining"))

		w := s.do(http.MethodPost, "/requests/"+req.ID.String()+"/accept", donorActionRequest{DonorID: donorID.String()})
		s.Equal(http.StatusUnprocessableEntity, w.Code)

		var resp map[string]string
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("donor_ineligible", resp["error"])
	})
}

func (s *MatchingHandlerSuite) TestListRequests() {
	s.Run("passes the status filter through", func() {
		pending := domain.StatusPending
		s.service.EXPECT().ListRequests(gomock.Any(), &pending).Return([]*request.Request{s.sampleRequest()}, nil)

		w := s.do(http.MethodGet, "/requests?status=PENDING", nil)
		s.Equal(http.StatusOK, w.Code)

		var resp []requestResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Len(resp, 1)
	})

	s.Run("rejects unknown statuses", func() {
		w := s.do(http.MethodGet, "/requests?status=BOGUS", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *MatchingHandlerSuite) TestConfirm() {
	req := s.sampleRequest()
	donorID := domain.NewUserID()
	s.Require().NoError(req.Accept(donorID))
	s.Require().NoError(req.Confirm(donorID))

	s.service.EXPECT().ConfirmDonation(gomock.Any(), req.ID, donorID).Return(req, nil)

	w := s.do(http.MethodPost, "/requests/"+req.ID.String()+"/confirm", donorActionRequest{DonorID: donorID.String()})
	s.Equal(http.StatusOK, w.Code)

	var resp requestResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("FULFILLED", resp.Status)
}

func (s *MatchingHandlerSuite) TestExpire() {
	req := s.sampleRequest()
	s.Require().NoError(req.Expire())

	s.service.EXPECT().ExpireRequest(gomock.Any(), req.ID).Return(req, nil)

	w := s.do(http.MethodPost, "/requests/"+req.ID.String()+"/expire", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp requestResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("EXPIRED", resp.Status)
}

func (s *MatchingHandlerSuite) TestToggleAvailability() {
	d := s.sampleDonor()
	d.IsAvailable = false
	s.service.EXPECT().ToggleAvailability(gomock.Any(), d.ID).Return(d, nil)

	w := s.do(http.MethodPost, "/users/"+d.ID.String()+"/availability/toggle", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp userResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.IsAvailable)
}
