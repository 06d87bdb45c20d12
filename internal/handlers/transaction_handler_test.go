package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/services/service_mocks"
	"fintrack/internal/validation"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}

type TransactionHandlerSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	transactionService *service_mocks.MockTransactionServiceInterface
	handler            *TransactionHandler
	e                  *echo.Echo
	userID             uuid.UUID
	factorySessions    []services.Session
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionService = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.userID = uuid.New()
	s.factorySessions = nil

	factory := func(session services.Session) services.TransactionServiceInterface {
		s.factorySessions = append(s.factorySessions, session)
		return s.transactionService
	}

	s.handler = NewTransactionHandler(factory, services.NewCategoryService())
	s.e = echo.New()
}

func (s *TransactionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerSuite) authedContext(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	c.Set("username", "maria_p")
	return rec, c
}

func (s *TransactionHandlerSuite) sampleSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Transactions: []models.Transaction{
			{
				ID:          uuid.New(),
				UserID:      s.userID,
				Description: "Sueldo de agosto",
				Amount:      decimal.RequireFromString("1500.00"),
				Type:        models.TransactionTypeIncome,
				Category:    "Ingresos",
			},
		},
		Stats: &models.Stats{
			TotalIncome:   decimal.RequireFromString("1500.00"),
			TotalExpenses: decimal.Zero,
			Balance:       decimal.RequireFromString("1500.00"),
			ByCategory: map[string]decimal.Decimal{
				"Ingresos": decimal.RequireFromString("1500.00"),
			},
		},
	}
}

func (s *TransactionHandlerSuite) TestCreate_Success() {
	s.transactionService.EXPECT().
		Create("Sueldo de agosto", "1500.00").
		Return(s.sampleSnapshot(), nil)

	rec, c := s.authedContext(http.MethodPost, "/transactions", map[string]string{
		"description": "Sueldo de agosto",
		"amount":      "1500.00",
	})

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.SnapshotResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Transactions, 1)
	s.Equal("Sueldo de agosto", response.Transactions[0].Description)
	s.True(response.Stats.Balance.Equal(decimal.RequireFromString("1500.00")))

	s.Require().Len(s.factorySessions, 1)
	s.Equal(s.userID, s.factorySessions[0].UserID)
	s.Equal("maria_p", s.factorySessions[0].Username)
}

func (s *TransactionHandlerSuite) TestCreate_ValidationFailure() {
	s.transactionService.EXPECT().
		Create("", "abc").
		Return(nil, validation.Errors{
			"description": "description is required",
			"amount":      "amount must be a number",
		})

	rec, c := s.authedContext(http.MethodPost, "/transactions", map[string]string{
		"description": "",
		"amount":      "abc",
	})

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_001", response.Error.Code)
	s.Len(response.Error.Details, 2)
}

func (s *TransactionHandlerSuite) TestCreate_Unauthenticated() {
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(s.factorySessions)
}

func (s *TransactionHandlerSuite) TestCreate_StoreUnavailable() {
	s.transactionService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, services.ErrStoreUnavailable)

	rec, c := s.authedContext(http.MethodPost, "/transactions", map[string]string{
		"description": "Taxi",
		"amount":      "-12.00",
	})

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusServiceUnavailable, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("SYSTEM_002", response.Error.Code)
}

func (s *TransactionHandlerSuite) TestUpdate_Success() {
	id := uuid.New()

	s.transactionService.EXPECT().
		Update(id, "Cena en restaurante", "-75.25").
		Return(s.sampleSnapshot(), nil)

	rec, c := s.authedContext(http.MethodPut, "/transactions/"+id.String(), map[string]string{
		"description": "Cena en restaurante",
		"amount":      "-75.25",
	})
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerSuite) TestUpdate_NotPermitted() {
	id := uuid.New()

	s.transactionService.EXPECT().
		Update(id, gomock.Any(), gomock.Any()).
		Return(nil, services.ErrNotPermitted)

	rec, c := s.authedContext(http.MethodPut, "/transactions/"+id.String(), map[string]string{
		"description": "Compra ajena",
		"amount":      "-5.00",
	})
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusForbidden, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("AUTH_005", response.Error.Code)
}

func (s *TransactionHandlerSuite) TestUpdate_InvalidID() {
	rec, c := s.authedContext(http.MethodPut, "/transactions/not-a-uuid", map[string]string{
		"description": "Cena",
		"amount":      "-75.25",
	})
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TransactionHandlerSuite) TestDelete_Success() {
	id := uuid.New()

	s.transactionService.EXPECT().
		Delete(id).
		Return(s.sampleSnapshot(), nil)

	rec, c := s.authedContext(http.MethodDelete, "/transactions/"+id.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerSuite) TestDelete_NotPermitted() {
	id := uuid.New()

	s.transactionService.EXPECT().
		Delete(id).
		Return(nil, services.ErrNotPermitted)

	rec, c := s.authedContext(http.MethodDelete, "/transactions/"+id.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *TransactionHandlerSuite) TestList_Success() {
	s.transactionService.EXPECT().
		List().
		Return(s.sampleSnapshot(), nil)

	rec, c := s.authedContext(http.MethodGet, "/transactions", nil)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.SnapshotResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Transactions, 1)
}

func (s *TransactionHandlerSuite) TestStats_Success() {
	s.transactionService.EXPECT().
		Stats().
		Return(s.sampleSnapshot().Stats, nil)

	rec, c := s.authedContext(http.MethodGet, "/transactions/stats", nil)

	s.NoError(s.handler.Stats(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.StatsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.TotalIncome.Equal(decimal.RequireFromString("1500.00")))
}

func (s *TransactionHandlerSuite) TestStats_AggregationFailure() {
	s.transactionService.EXPECT().
		Stats().
		Return(nil, &services.AggregationError{TransactionID: uuid.New(), Reason: "zero amount"})

	rec, c := s.authedContext(http.MethodGet, "/transactions/stats", nil)

	s.NoError(s.handler.Stats(c))
	s.Equal(http.StatusInternalServerError, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("AGGREGATION_001", response.Error.Code)
}

func (s *TransactionHandlerSuite) TestCategories() {
	rec, c := s.authedContext(http.MethodGet, "/categories", nil)

	s.NoError(s.handler.Categories(c))
	s.Equal(http.StatusOK, rec.Code)

	var response map[string][]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Contains(response["categories"], "Otros")
}
