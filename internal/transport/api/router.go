package api

import (
	"fmt"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup       = "/api"
	MachinesRoute    = "/machines"
	MachineRoute     = "/machines/:id"
	PriceRoute       = "/machines/:id/price"
	BuyRoute         = "/machines/:id/buy"
	WithdrawRoute    = "/machines/:id/withdraw"
	RestockRoute     = "/machines/:id/restock"
	StaffBadgesRoute = "/machines/:id/staff-badges"
	RulesRoute       = "/machines/:id/rules/:operation"
	JournalRoute     = "/machines/:id/journal"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	MachineService MachineServicer
	BadgeSecret    []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	machineHandler := NewMachineHandler(args.MachineService)

	api := r.Group(RouteGroup)
	api.POST(MachinesRoute, machineHandler.Create)
	api.GET(MachineRoute, machineHandler.Show)

	// ниже все роуты принимают доказательства владения бейджами. Пустой набор допустим: решение
	// принимает политика автомата.
	api.Use(middlewares.Credentials(args.BadgeSecret))
	api.GET(PriceRoute, machineHandler.Price)
	api.PUT(PriceRoute, machineHandler.SetPrice)
	api.POST(BuyRoute, machineHandler.Buy)
	api.POST(WithdrawRoute, machineHandler.Withdraw)
	api.POST(RestockRoute, machineHandler.Restock)
	api.POST(StaffBadgesRoute, machineHandler.IssueStaffBadge)
	api.PUT(RulesRoute, machineHandler.SetRule)
	api.GET(JournalRoute, machineHandler.Journal)
	return r, nil
}
