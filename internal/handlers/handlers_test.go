// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/stitchworks/apparel-backend/internal/i18n"
	"github.com/stitchworks/apparel-backend/internal/middleware"
	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/services"
)

const testActor = "admin@stitchworks.test"

type fakeQuoter struct {
	breakdown *pricing.OrderPriceBreakdown
	err       error
	last      *services.QuoteRequest
}

func (f *fakeQuoter) Quote(_ context.Context, req *services.QuoteRequest) (*pricing.OrderPriceBreakdown, error) {
	f.last = req
	return f.breakdown, f.err
}

type fakeOrders struct {
	order     *models.Order
	breakdown *pricing.OrderPriceBreakdown
	refs      []string
	err       error
	actor     string
}

func (f *fakeOrders) PlaceOrder(context.Context, *services.PlaceOrderRequest) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrders) GetOrder(context.Context, uuid.UUID) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrders) ListOrders(context.Context, services.OrderFilter) ([]models.Order, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return []models.Order{*f.order}, 1, nil
}

func (f *fakeOrders) CompleteOrder(_ context.Context, _ uuid.UUID, actor string) (*models.Order, error) {
	f.actor = actor
	return f.order, f.err
}

func (f *fakeOrders) Receipt(context.Context, uuid.UUID) (*pricing.OrderPriceBreakdown, error) {
	return f.breakdown, f.err
}

func (f *fakeOrders) UploadReferences(_ context.Context, id uuid.UUID, presign func(string) (string, error)) ([]services.UploadReference, error) {
	out := []services.UploadReference{}
	for _, ref := range f.refs {
		url, err := presign(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, services.UploadReference{LineID: id, Ref: ref, URL: url})
	}
	return out, f.err
}

type fakeStorage struct{}

func (fakeStorage) Presign(ref string) (string, error) {
	return "https://signed.example/" + ref, nil
}

func (fakeStorage) UploadReference(file multipart.File, header *multipart.FileHeader) (*services.UploadResult, error) {
	body, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &services.UploadResult{Ref: "references/" + header.Filename, Size: int64(len(body)), MimeType: "image/png"}, nil
}

type fakePromotions struct {
	active []pricing.Promotion
	err    error
	at     time.Time
}

func (f *fakePromotions) Create(context.Context, *services.PromotionRequest, string) (*models.Promotion, error) {
	return &models.Promotion{Name: "Spring"}, f.err
}

func (f *fakePromotions) Update(context.Context, uuid.UUID, *services.PromotionRequest, string) (*models.Promotion, error) {
	return &models.Promotion{Name: "Spring"}, f.err
}

func (f *fakePromotions) Delete(context.Context, uuid.UUID, string) error {
	return f.err
}

func (f *fakePromotions) Get(context.Context, uuid.UUID) (*models.Promotion, error) {
	return &models.Promotion{Name: "Spring"}, f.err
}

func (f *fakePromotions) List(context.Context, services.PromotionFilter) ([]models.Promotion, int64, error) {
	return []models.Promotion{{Name: "Spring"}}, 1, f.err
}

func (f *fakePromotions) Active(_ context.Context, now time.Time) ([]pricing.Promotion, error) {
	f.at = now
	return f.active, f.err
}

type fakeAuth struct{}

func (fakeAuth) Login(req *services.LoginRequest) (*services.AuthResponse, error) {
	if req.Password != "correct-horse" {
		return nil, services.ErrInvalidCredentials
	}
	return &services.AuthResponse{AccessToken: "jwt", TokenType: "Bearer", ExpiresIn: 3600, Email: req.Email, Role: "admin"}, nil
}

type HandlersTestSuite struct {
	suite.Suite
	router     *gin.Engine
	quoter     *fakeQuoter
	orders     *fakeOrders
	promotions *fakePromotions
	now        time.Time
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	require.NoError(suite.T(), i18n.Initialize("../i18n/locales", "en"))
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.now = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	suite.quoter = &fakeQuoter{}
	suite.orders = &fakeOrders{}
	suite.promotions = &fakePromotions{}

	pricingHandler := NewPricingHandler(suite.quoter)
	orderHandler := NewOrderHandler(suite.orders, fakeStorage{})
	promotionHandler := NewPromotionHandler(suite.promotions, func() time.Time { return suite.now })
	authHandler := NewAuthHandler(fakeAuth{})
	uploadHandler := NewUploadHandler(fakeStorage{})

	r := gin.New()
	r.Use(middleware.I18nMiddleware())
	v1 := r.Group("/v1")
	v1.POST("/pricing/quote", pricingHandler.Quote)
	v1.POST("/orders", orderHandler.PlaceOrder)
	v1.GET("/orders/:id", orderHandler.GetOrder)
	v1.GET("/orders/:id/receipt", orderHandler.Receipt)
	v1.GET("/promotions/active", promotionHandler.Active)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/uploads", uploadHandler.UploadReference)

	admin := v1.Group("/admin", func(c *gin.Context) {
		c.Set("actor", testActor)
		c.Next()
	})
	admin.POST("/promotions", promotionHandler.Create)
	admin.DELETE("/promotions/:id", promotionHandler.Delete)
	admin.GET("/orders", orderHandler.ListOrders)
	admin.GET("/orders/:id", orderHandler.AdminGetOrder)
	admin.POST("/orders/:id/complete", orderHandler.CompleteOrder)
	admin.GET("/orders/:id/uploads", orderHandler.UploadReferences)

	suite.router = r
}

func (suite *HandlersTestSuite) request(method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func errorCode(response map[string]interface{}) string {
	return response["error"].(map[string]interface{})["code"].(string)
}

func validQuote() map[string]interface{} {
	return map[string]interface{}{
		"lines": []map[string]interface{}{
			{"product_id": uuid.NewString(), "quantity": 2, "mode": "gallery"},
		},
	}
}

func sampleBreakdown() *pricing.OrderPriceBreakdown {
	return &pricing.OrderPriceBreakdown{
		Currency: "USD",
		Lines: []pricing.LinePriceBreakdown{
			{ProductID: "tee", Quantity: 2, UnitPrice: decimal.RequireFromString("20"), LineTotal: decimal.RequireFromString("40"), Availability: pricing.AvailabilityOnRequest},
			{ProductID: "tee", Quantity: 1, QuotePending: true, Availability: pricing.AvailabilityInStock},
		},
		PreDiscountSubtotal: decimal.RequireFromString("40"),
		Subtotal:            decimal.RequireFromString("40"),
		GrandTotal:          decimal.RequireFromString("40"),
		PendingQuotation:    1,
		StoreCreditGrants:   []pricing.StoreCreditGrant{},
		Warnings:            []pricing.PromotionWarning{},
	}
}

func (suite *HandlersTestSuite) TestQuoteLocalizesLabels() {
	t := suite.T()
	suite.quoter.breakdown = sampleBreakdown()

	w, response := suite.request(http.MethodPost, "/v1/pricing/quote", validQuote())
	require.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "40", data["grand_total"])
	assert.Equal(t, float64(1), data["pending_quotation"])

	lines := data["lines"].([]interface{})
	require.Len(t, lines, 2)
	assert.Equal(t, "Made to order", lines[0].(map[string]interface{})["availability_label"])
	assert.Equal(t, "Price to be confirmed", lines[1].(map[string]interface{})["price_label"])
	assert.Equal(t, "tee", lines[1].(map[string]interface{})["product_id"])

	_, response = suite.request(http.MethodPost, "/v1/pricing/quote", validQuote(), "Accept-Language", "es-ES")
	lines = response["data"].(map[string]interface{})["lines"].([]interface{})
	assert.Equal(t, "Precio a confirmar", lines[1].(map[string]interface{})["price_label"])
}

func (suite *HandlersTestSuite) TestQuoteRejectsInvalidRequest() {
	w, response := suite.request(http.MethodPost, "/v1/pricing/quote", map[string]interface{}{"lines": []interface{}{}})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", errorCode(response))
	assert.Nil(suite.T(), suite.quoter.last)
}

func (suite *HandlersTestSuite) TestQuoteMapsPricingFailures() {
	t := suite.T()
	suite.quoter.err = &pricing.LineError{Index: 0, Ref: "ghost", Err: pricing.ErrProductNotFound}

	w, response := suite.request(http.MethodPost, "/v1/pricing/quote", validQuote())
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	apiErr := response["error"].(map[string]interface{})
	assert.Equal(t, "PRICING_FAILED", apiErr["code"])
	assert.Equal(t, "A product in this order no longer exists", apiErr["message"])
	assert.Equal(t, "ghost", apiErr["details"].(map[string]interface{})["ref"])

	suite.quoter.err = fmt.Errorf("line 0: %w", services.ErrTooManyDesigns)
	w, response = suite.request(http.MethodPost, "/v1/pricing/quote", validQuote())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(response))

	suite.quoter.err = errors.New("connection reset")
	w, _ = suite.request(http.MethodPost, "/v1/pricing/quote", validQuote())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func (suite *HandlersTestSuite) TestPlaceOrder() {
	suite.orders.order = &models.Order{OrderNumber: "ORD-20260701-ABC234", Status: models.OrderStatusPlaced}

	w, response := suite.request(http.MethodPost, "/v1/orders", validQuote())
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "Order placed", data["message"])
	assert.Equal(suite.T(), "ORD-20260701-ABC234", data["order"].(map[string]interface{})["order_number"])
}

func (suite *HandlersTestSuite) TestOrderLookupErrors() {
	w, _ := suite.request(http.MethodGet, "/v1/orders/not-a-uuid", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	suite.orders.err = services.ErrOrderNotFound
	w, response := suite.request(http.MethodGet, "/v1/orders/"+uuid.NewString(), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "Order not found", response["error"].(map[string]interface{})["message"])
}

func sampleOrder() *models.Order {
	customerID := uuid.New()
	return &models.Order{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		OrderNumber: "ORD-20260701-ABC234",
		CustomerID:  &customerID,
		Status:      models.OrderStatusPlaced,
		Currency:    "USD",
		GrandTotal:  decimal.RequireFromString("40"),
		Notes:       "leave at the back door",
		Breakdown:   models.JSONB{"grand_total": "40"},
		Lines: []models.OrderLine{{
			Position:      1,
			ProductID:     uuid.New(),
			Quantity:      2,
			Mode:          "upload",
			Customization: models.JSONB{"personalization": map[string]interface{}{"text": "ALEX"}},
			UploadRefs:    []string{"references/private.png"},
			Instructions:  "match the pantone swatch",
			UnitPrice:     decimal.RequireFromString("20"),
			LineTotal:     decimal.RequireFromString("40"),
		}},
	}
}

func (suite *HandlersTestSuite) TestGetOrderServesPublicView() {
	t := suite.T()
	suite.orders.order = sampleOrder()

	w, response := suite.request(http.MethodGet, "/v1/orders/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "ORD-20260701-ABC234", data["order_number"])
	assert.Equal(t, "40.00", data["grand_total"])
	for _, hidden := range []string{"customer_id", "notes", "breakdown", "customer"} {
		assert.NotContains(t, data, hidden)
	}

	lines := data["lines"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "20.00", line["unit_price"])
	for _, hidden := range []string{"upload_refs", "instructions", "customization"} {
		assert.NotContains(t, line, hidden)
	}
	assert.NotContains(t, w.Body.String(), "references/private.png")
}

func (suite *HandlersTestSuite) TestAdminGetOrderServesFullRecord() {
	t := suite.T()
	suite.orders.order = sampleOrder()

	w, response := suite.request(http.MethodGet, "/v1/admin/orders/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, suite.orders.order.CustomerID.String(), data["customer_id"])
	assert.Equal(t, "leave at the back door", data["notes"])
}

func (suite *HandlersTestSuite) TestReceiptHidesCustomerID() {
	t := suite.T()
	breakdown := sampleBreakdown()
	grant := pricing.StoreCreditGrant{PromotionID: "credit", CustomerID: "5b6c7d8e-9f01-4a2b-8c3d-4e5f6a7b8c04", Amount: decimal.RequireFromString("5")}
	breakdown.Lines[0].StoreCredit = &grant
	breakdown.StoreCreditGrants = []pricing.StoreCreditGrant{grant}
	suite.orders.breakdown = breakdown

	w, response := suite.request(http.MethodGet, "/v1/orders/"+uuid.NewString()+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), grant.CustomerID)

	grants := response["data"].(map[string]interface{})["store_credit_grants"].([]interface{})
	require.Len(t, grants, 1)
	assert.Equal(t, "5", grants[0].(map[string]interface{})["amount"])
	assert.Equal(t, grant.CustomerID, breakdown.StoreCreditGrants[0].CustomerID, "stored breakdown is left intact")
	assert.Equal(t, grant.CustomerID, breakdown.Lines[0].StoreCredit.CustomerID)
}

func (suite *HandlersTestSuite) TestReceiptReturnsStoredBreakdown() {
	suite.orders.breakdown = sampleBreakdown()

	w, response := suite.request(http.MethodGet, "/v1/orders/"+uuid.NewString()+"/receipt", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	lines := response["data"].(map[string]interface{})["lines"].([]interface{})
	assert.Equal(suite.T(), "Price to be confirmed", lines[1].(map[string]interface{})["price_label"])
}

func (suite *HandlersTestSuite) TestCompleteOrder() {
	t := suite.T()
	suite.orders.order = &models.Order{Status: models.OrderStatusCompleted}

	w, _ := suite.request(http.MethodPost, "/v1/admin/orders/"+uuid.NewString()+"/complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testActor, suite.orders.actor)

	suite.orders.err = services.ErrOrderNotCompletable
	w, response := suite.request(http.MethodPost, "/v1/admin/orders/"+uuid.NewString()+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(response))
}

func (suite *HandlersTestSuite) TestListOrdersPaginates() {
	suite.orders.order = &models.Order{OrderNumber: "ORD-1"}

	w, response := suite.request(http.MethodGet, "/v1/admin/orders?page=1&limit=10", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "1", w.Header().Get("X-Total-Count"))

	pagination := response["meta"].(map[string]interface{})["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(10), pagination["limit"])

	w, _ = suite.request(http.MethodGet, "/v1/admin/orders?customer_id=bad", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUploadReferencesArePresigned() {
	suite.orders.refs = []string{"references/a.png"}

	w, response := suite.request(http.MethodGet, "/v1/admin/orders/"+uuid.NewString()+"/uploads", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	refs := response["data"].(map[string]interface{})["references"].([]interface{})
	require.Len(suite.T(), refs, 1)
	assert.Equal(suite.T(), "https://signed.example/references/a.png", refs[0].(map[string]interface{})["url"])
}

func (suite *HandlersTestSuite) TestActivePromotionsUseHandlerClock() {
	suite.promotions.active = []pricing.Promotion{{ID: "p1", Type: pricing.PromotionPercentage, Scope: pricing.ScopeAll, IsActive: true}}

	w, response := suite.request(http.MethodGet, "/v1/promotions/active", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), suite.now, suite.promotions.at)

	promotions := response["data"].(map[string]interface{})["promotions"].([]interface{})
	assert.Len(suite.T(), promotions, 1)
}

func (suite *HandlersTestSuite) TestCreatePromotionRejectsInvalidConfig() {
	t := suite.T()
	body := map[string]interface{}{
		"name":       "Broken BOGO",
		"type":       "bogo",
		"scope":      "all",
		"value":      "0",
		"start_date": suite.now.Format(time.RFC3339),
	}

	suite.promotions.err = fmt.Errorf("%w: bogo needs groups of at least 2 units", pricing.ErrInvalidPromotionConfig)
	w, response := suite.request(http.MethodPost, "/v1/admin/promotions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, response["error"].(map[string]interface{})["message"], "bogo needs groups")

	suite.promotions.err = nil
	w, _ = suite.request(http.MethodPost, "/v1/admin/promotions", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	body["type"] = "half_off"
	w, response = suite.request(http.MethodPost, "/v1/admin/promotions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}

func (suite *HandlersTestSuite) TestDeleteMissingPromotion() {
	suite.promotions.err = services.ErrPromotionNotFound

	w, _ := suite.request(http.MethodDelete, "/v1/admin/promotions/"+uuid.NewString(), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestLogin() {
	w, response := suite.request(http.MethodPost, "/v1/auth/login", map[string]string{"email": testActor, "password": "correct-horse"})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "jwt", response["data"].(map[string]interface{})["token"])

	w, response = suite.request(http.MethodPost, "/v1/auth/login", map[string]string{"email": testActor, "password": "nope"})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(suite.T(), "Invalid email or password", response["error"].(map[string]interface{})["message"])
}

func (suite *HandlersTestSuite) TestUploadReference() {
	t := suite.T()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "front.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ref":"references/front.png"`)

	w, _ = suite.request(http.MethodPost, "/v1/uploads", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
