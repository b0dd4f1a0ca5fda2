package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	googlecal "assistant/internal/adapter/calendar/google"
	memcalendar "assistant/internal/adapter/calendar/memory"
	"assistant/internal/adapter/llm/gemini"
	"assistant/internal/adapter/llm/openai"
	"assistant/internal/adapter/metrics"
	metricsinmem "assistant/internal/adapter/metrics/inmemory"
	"assistant/internal/adapter/metrics/prom"
	filerepo "assistant/internal/adapter/repo/file"
	gormrepo "assistant/internal/adapter/repo/gorm"
	memrepo "assistant/internal/adapter/repo/memory"
	redisrepo "assistant/internal/adapter/repo/redis"
	"assistant/internal/adapter/restclient"
	"assistant/internal/app/command"
	"assistant/internal/app/ports"
	"assistant/internal/app/reminders"
	"assistant/internal/app/scheduling"
	"assistant/internal/app/tasks"
	"assistant/internal/config"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services is everything a subcommand may need, built once from config.
type services struct {
	Command   command.UseCase
	Tasks     tasks.UseCase
	Reminders reminders.UseCase
	Sweep     reminders.SweepUseCase
	KPI       *metricsinmem.Recorder
	Registry  *prometheus.Registry

	closers []func() error
}

func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

func buildServices(ctx context.Context, cfg config.Config, logger *zap.Logger) (*services, error) {
	svc := &services{}
	ok := false
	defer func() {
		if !ok {
			_ = svc.Close()
		}
	}()

	rest, err := restclient.New(cfg.LLM.Timeout)
	if err != nil {
		return nil, err
	}

	mem := memrepo.NewStore()
	taskRepo, taskTx, err := buildTaskStore(cfg.Store, mem, logger, svc)
	if err != nil {
		return nil, err
	}
	reminderRepo, err := buildReminderStore(ctx, cfg.Reminders, mem, svc)
	if err != nil {
		return nil, err
	}
	completer, err := buildCompleter(ctx, cfg.LLM, rest)
	if err != nil {
		return nil, err
	}
	calendar, err := buildCalendar(cfg.Calendar)
	if err != nil {
		return nil, err
	}

	svc.KPI = metricsinmem.NewRecorder()
	svc.Registry = prometheus.NewRegistry()
	recorder := metrics.Multi{svc.KPI, prom.NewRecorder(svc.Registry)}

	svc.Tasks = tasks.UseCase{
		Repo:      taskRepo,
		TxManager: taskTx,
		Completer: completer,
		Logger:    logger,
	}
	svc.Reminders = reminders.UseCase{
		Repo:      reminderRepo,
		TxManager: memrepo.NewTxManager(mem),
		Logger:    logger,
	}
	svc.Sweep = reminders.SweepUseCase{
		Repo:     reminderRepo,
		Notifier: reminders.LogNotifier{Logger: logger.Named("notifier")},
		Logger:   logger,
		Now:      time.Now,
	}

	timeout := cfg.Pipeline.CallTimeout
	svc.Command = command.UseCase{
		Gate: command.Gate{
			Moderator: openai.NewModerator(rest, cfg.Moderation.BaseURL, cfg.Moderation.APIKey, cfg.Moderation.Model),
			Timeout:   timeout,
		},
		Classifier: command.Classifier{Completer: completer, Timeout: timeout},
		Resolver: command.Resolver{
			Completer: completer,
			Timeout:   timeout,
			TimeZone:  cfg.Pipeline.TimeZone,
			Now:       time.Now,
		},
		Router: command.Router{
			Tasks:     svc.Tasks,
			Schedule:  scheduling.UseCase{Calendar: calendar, CalendarID: cfg.Calendar.ID, Logger: logger},
			Reminders: svc.Reminders,
			Timeout:   timeout,
		},
		Dispatcher: command.NewDispatcher(cfg.Pipeline.Concurrency),
		Metrics:    recorder,
		Logger:     logger.Named("pipeline"),
		NewID:      uuid.NewString,
	}
	ok = true
	return svc, nil
}

func buildTaskStore(cfg config.StoreConfig, mem *memrepo.Store, logger *zap.Logger, svc *services) (ports.TaskRepository, ports.TxManager, error) {
	switch cfg.Driver {
	case "file":
		repo := filerepo.NewTaskRepo(cfg.Path)
		return repo, repo, nil
	case "postgres":
		db, err := openPostgres(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		svc.closers = append(svc.closers, func() error { return gormrepo.Close(db) })
		return gormrepo.NewTaskRepo(db), gormrepo.NewTxManager(db), nil
	default:
		return memrepo.NewTaskRepo(mem), memrepo.NewTxManager(mem), nil
	}
}

func openPostgres(cfg config.StoreConfig, logger *zap.Logger) (*gorm.DB, error) {
	return gormrepo.OpenPostgres(cfg.DSN, gormrepo.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: 30 * time.Minute,
		Logger:          logger,
	})
}

func buildReminderStore(ctx context.Context, cfg config.RemindersConfig, mem *memrepo.Store, svc *services) (ports.ReminderRepository, error) {
	if cfg.Driver != "redis" {
		return memrepo.NewReminderRepo(mem), nil
	}
	repo, err := redisrepo.Open(ctx, redisrepo.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   cfg.RedisPrefix,
	})
	if err != nil {
		return nil, err
	}
	svc.closers = append(svc.closers, repo.Close)
	return repo, nil
}

func buildCompleter(ctx context.Context, cfg config.LLMConfig, rest *restclient.Client) (ports.Completer, error) {
	switch cfg.Provider {
	case "gemini":
		c, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return c, nil
	default:
		return openai.New(rest, openai.Config{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}), nil
	}
}

func buildCalendar(cfg config.CalendarConfig) (ports.Calendar, error) {
	if cfg.Driver != "google" {
		return memcalendar.NewCalendar(), nil
	}
	rest, err := restclient.New(cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return googlecal.New(rest, cfg.BaseURL, cfg.Token), nil
}
