package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rosterline/backend/internal/config"
	"github.com/rosterline/backend/internal/repository"
	"github.com/rosterline/backend/internal/seed"
	"github.com/rosterline/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var businessID int64

	flag.IntVar(&op, "op", 0, "operation (1: random managers, 2: random businesses, 3: random shift templates, 4: demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&businessID, "business-id", 0, "business to attach random shift templates to")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("cannot create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("cannot connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("manager count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				manager, err := utils.GenerateRandomManager(cfg.Seed.Manager.Password)
				if err != nil {
					slog.Error("cannot generate random manager", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateManager(manager); err != nil {
					slog.Error("cannot insert manager", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("managers inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("business count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				business := utils.GenerateRandomBusiness()
				if err := repo.CreateBusiness(business); err != nil {
					slog.Error("cannot insert business", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("businesses inserted", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("template count must be positive")
			return
		}

		// attach to the given business, or a random one per template
		businesses, err := repo.GetAllBusinesses()
		if err != nil {
			slog.Error("cannot fetch businesses", slog.String("error", err.Error()))
			return
		}
		if len(businesses) == 0 {
			slog.Error("no businesses to attach templates to")
			return
		}

		if businessID > 0 {
			if _, err := repo.GetBusinessByID(businessID); err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					slog.Error("business does not exist", slog.Int64("business_id", businessID))
				default:
					slog.Error("cannot fetch business", slog.String("error", err.Error()))
				}
				return
			}
		}

		cnt := n
		for i := 0; i < n; i++ {
			target := businessID
			if target == 0 {
				target = businesses[rand.Intn(len(businesses))].ID
			}

			tpl := utils.GenerateRandomShiftTemplate(target)
			if err := repo.CreateShiftTemplate(tpl); err != nil {
				slog.Error("cannot insert shift template", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("shift templates inserted", slog.Int("count", n-cnt))
	case 4:
		seed.SeedDemoData(cfg, repo)
	default:
		slog.Error("unknown operation")
	}
}
