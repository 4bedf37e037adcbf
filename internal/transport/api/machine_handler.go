package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/ledger"
	"github.com/fsdevblog/gumball-machine/internal/service"
	"github.com/fsdevblog/gumball-machine/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MachineHandler struct {
	svs MachineServicer
}

func NewMachineHandler(svs MachineServicer) *MachineHandler {
	return &MachineHandler{
		svs: svs,
	}
}

type BucketResponse struct {
	Resource domain.ResourceID `json:"resource"`
	Amount   decimal.Decimal   `json:"amount"`
}

func newBucketResponse(b ledger.Bucket) BucketResponse {
	return BucketResponse{Resource: b.Resource, Amount: b.Amount}
}

type MachineResponse struct {
	ID              uuid.UUID                            `json:"id"`
	CreatedAt       time.Time                            `json:"created_at"`
	Flavor          string                               `json:"flavor"`
	Price           decimal.Decimal                      `json:"price"`
	Resources       ResourcesResponse                    `json:"resources"`
	Inventory       decimal.Decimal                      `json:"inventory"`
	Treasury        decimal.Decimal                      `json:"treasury"`
	DefaultDecision domain.DecisionType                  `json:"default_decision"`
	RulesUpdatable  bool                                 `json:"rules_updatable"`
	Rules           map[domain.Operation]domain.RuleSpec `json:"rules"`
}

type ResourcesResponse struct {
	Product domain.ResourceID `json:"product"`
	Payment domain.ResourceID `json:"payment"`
	Admin   domain.ResourceID `json:"admin"`
	Staff   domain.ResourceID `json:"staff,omitempty"`
}

func newMachineResponse(m *domain.Machine) MachineResponse {
	return MachineResponse{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		Flavor:    m.Flavor,
		Price:     m.Price,
		Resources: ResourcesResponse{
			Product: m.Resources.Product,
			Payment: m.Resources.Payment,
			Admin:   m.Resources.Admin,
			Staff:   m.Resources.Staff,
		},
		Inventory:       m.Inventory,
		Treasury:        m.Treasury,
		DefaultDecision: m.DefaultDecision,
		RulesUpdatable:  m.RulesUpdatable,
		Rules:           m.Rules,
	}
}

// CreateMachineParams max_bytes совпадает с длиной колонки machines.flavor.
type CreateMachineParams struct {
	Price  decimal.Decimal `json:"price"  binding:"non_negative"`
	Flavor string          `json:"flavor" binding:"max_bytes=255"`
}

type CreateMachineResponse struct {
	Machine    MachineResponse `json:"machine"`
	AdminBadge string          `json:"admin_badge"`
}

// Create POST RouteGroup + MachinesRoute. Возвращает автомат и доказательство владения admin бейджем.
func (h *MachineHandler) Create(c *gin.Context) {
	var params CreateMachineParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	m, proof, err := h.svs.Instantiate(reqCtx, service.InstantiateArgs{Price: params.Price, Flavor: params.Flavor})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateMachineResponse{
		Machine:    newMachineResponse(m),
		AdminBadge: proof,
	})
}

// Show GET RouteGroup + MachineRoute.
func (h *MachineHandler) Show(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	m, err := h.svs.GetMachine(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMachineResponse(m))
}

type PriceResponse struct {
	Price decimal.Decimal `json:"price"`
}

// Price GET RouteGroup + PriceRoute.
func (h *MachineHandler) Price(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	price, err := h.svs.GetPrice(reqCtx, id, middlewares.CredentialsFromContext(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PriceResponse{Price: price})
}

type SetPriceParams struct {
	Price decimal.Decimal `json:"price" binding:"non_negative"`
}

// SetPrice PUT RouteGroup + PriceRoute.
func (h *MachineHandler) SetPrice(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}
	var params SetPriceParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	m, err := h.svs.SetPrice(reqCtx, id, middlewares.CredentialsFromContext(c), params.Price)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PriceResponse{Price: m.Price})
}

type BuyParams struct {
	Resource domain.ResourceID `json:"resource" binding:"required"`
	Amount   decimal.Decimal   `json:"amount"   binding:"non_negative"`
}

type SaleResponse struct {
	Product BucketResponse  `json:"product"`
	Change  BucketResponse  `json:"change"`
	Price   decimal.Decimal `json:"price"`
}

// Buy POST RouteGroup + BuyRoute. Тело запроса описывает ведро оплаты.
func (h *MachineHandler) Buy(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}
	var params BuyParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	sale, err := h.svs.Buy(
		reqCtx, id, middlewares.CredentialsFromContext(c), ledger.NewBucket(params.Resource, params.Amount),
	)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SaleResponse{
		Product: newBucketResponse(sale.Product),
		Change:  newBucketResponse(sale.Change),
		Price:   sale.Price,
	})
}

type WithdrawParams struct {
	Amount *decimal.Decimal `json:"amount" binding:"omitempty,non_negative"`
}

// Withdraw POST RouteGroup + WithdrawRoute. Без amount выводится вся выручка.
func (h *MachineHandler) Withdraw(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}
	var params WithdrawParams
	if c.Request.ContentLength != 0 && !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	earnings, err := h.svs.Withdraw(reqCtx, id, middlewares.CredentialsFromContext(c), params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBucketResponse(earnings))
}

type RestockParams struct {
	Quantity *decimal.Decimal `json:"quantity" binding:"omitempty,non_negative"`
}

type InventoryResponse struct {
	Inventory decimal.Decimal `json:"inventory"`
}

// Restock POST RouteGroup + RestockRoute. Без quantity запас пополняется на объем по умолчанию.
func (h *MachineHandler) Restock(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}
	var params RestockParams
	if c.Request.ContentLength != 0 && !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	m, err := h.svs.Restock(reqCtx, id, middlewares.CredentialsFromContext(c), params.Quantity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, InventoryResponse{Inventory: m.Inventory})
}

type IssueStaffBadgeParams struct {
	Identity string `json:"identity" binding:"required,max_bytes=255"`
}

type StaffBadgeResponse struct {
	Resource domain.ResourceID `json:"resource"`
	LocalID  uint64            `json:"local_id"`
	Identity string            `json:"identity"`
	Proof    string            `json:"proof"`
}

// IssueStaffBadge POST RouteGroup + StaffBadgesRoute.
func (h *MachineHandler) IssueStaffBadge(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}
	var params IssueStaffBadgeParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	issued, err := h.svs.IssueStaffBadge(reqCtx, id, middlewares.CredentialsFromContext(c), params.Identity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, StaffBadgeResponse{
		Resource: issued.Badge.Resource,
		LocalID:  issued.Badge.LocalID,
		Identity: issued.Badge.Identity,
		Proof:    issued.Proof,
	})
}

type RuleURI struct {
	Operation string `uri:"operation" binding:"operation"`
}

type RuleResponse struct {
	Operation domain.Operation `json:"operation"`
	Rule      domain.RuleSpec  `json:"rule"`
}

// SetRule PUT RouteGroup + RulesRoute. Тело запроса domain.RuleSpec, в поле resource допускаются алиасы.
func (h *MachineHandler) SetRule(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}
	var uri RuleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, domain.ErrUnknownOperation).SetType(gin.ErrorTypePublic)
		return
	}
	var spec domain.RuleSpec
	if !bindJSON(c, &spec) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	op := domain.Operation(uri.Operation)
	m, err := h.svs.SetRule(reqCtx, id, middlewares.CredentialsFromContext(c), op, spec)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, RuleResponse{Operation: op, Rule: m.Rules[op]})
}

type JournalQuery struct {
	Limit uint `form:"limit" binding:"max=1000"`
}

type JournalEntryResponse struct {
	ID        int64                  `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	Kind      domain.JournalKindType `json:"kind"`
	Resource  domain.ResourceID      `json:"resource,omitempty"`
	Amount    decimal.Decimal        `json:"amount"`
	Details   string                 `json:"details,omitempty"`
}

// Journal GET RouteGroup + JournalRoute.
func (h *MachineHandler) Journal(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}
	var query JournalQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	entries, err := h.svs.Journal(reqCtx, id, middlewares.CredentialsFromContext(c), query.Limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if len(entries) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	response := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		response[i] = JournalEntryResponse{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			Kind:      e.Kind,
			Resource:  e.Resource,
			Amount:    e.Amount,
			Details:   e.Details,
		}
	}
	c.JSON(http.StatusOK, response)
}

// machineID разбирает id автомата из пути. При ошибке запрос уже завершен.
func machineID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON разбирает тело запроса. Нечитаемое тело - 400, не прошедшее валидацию - 422.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, err).SetType(gin.ErrorTypePublic)
		return false
	}
	_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
	return false
}
