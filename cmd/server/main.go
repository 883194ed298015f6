package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/lhoska/venue-seating-planner/internal/config"
	"github.com/lhoska/venue-seating-planner/internal/database"
	"github.com/lhoska/venue-seating-planner/internal/handler"
	"github.com/lhoska/venue-seating-planner/internal/model"
	"github.com/lhoska/venue-seating-planner/internal/queue"
	"github.com/lhoska/venue-seating-planner/internal/repository"
	"github.com/lhoska/venue-seating-planner/internal/router"
	"github.com/lhoska/venue-seating-planner/internal/seating"
	queue_publisher "github.com/lhoska/venue-seating-planner/internal/service"
)

// planStore adapts the plan and constraint repositories to the single
// persistence view the session manager wants.
type planStore struct {
	plans       *repository.PlanRepo
	constraints *repository.ConstraintRepo
}

func (s *planStore) GetPlan(ctx context.Context, planID string) (*model.PlanDocument, error) {
	return s.plans.GetPlan(ctx, planID)
}

func (s *planStore) ReplacePlan(ctx context.Context, doc *model.PlanDocument) error {
	return s.plans.ReplacePlan(ctx, doc)
}

func (s *planStore) ConstraintsByPlan(ctx context.Context, planID string) ([]model.Constraint, error) {
	return s.constraints.ConstraintsByPlan(ctx, planID)
}

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables the snapshot cache and the
	// selected-plan pointer, nothing else.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; serving plans from MySQL only")
	}
	cache := repository.NewPlanCache(rdb, time.Duration(cfg.CacheTTLMin)*time.Minute)

	planRepo := repository.NewPlanRepo(db, cache)
	constraintRepo := repository.NewConstraintRepo(db)
	rosterRepo := repository.NewRosterRepo(db)

	amqpURL := cfg.AMQPURL
	if amqpURL == "" {
		amqpURL = queue.BrokerURL()
	}
	bus := queue_publisher.NewBus(amqpURL, cfg.Instance)

	store := &planStore{plans: planRepo, constraints: constraintRepo}
	sessions := seating.NewSessionManager(store, cache, bus)

	// Reconcile edits flushed by other planner instances.
	go func() {
		if err := queue.StartPlanFeedConsumer(sessions, cfg.Instance); err != nil {
			log.Printf("plan feed consumer stopped: %v", err)
		}
	}()

	p := handler.NewPlannerHandler(planRepo, constraintRepo, rosterRepo, sessions)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPlanner(e, p, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
