package main

import (
	httpadapter "assistant/internal/adapter/http"
	cronsched "assistant/internal/adapter/scheduler/cron"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the reminder sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := opts.cfg, opts.logger
			svc, err := buildServices(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			sched := cronsched.New(logger.Named("cron"), cfg.Pipeline.CallTimeout)
			if err := sched.Add("reminder-sweep", cfg.Reminders.Sweep, svc.Sweep); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			h := httpadapter.Handler{
				CommandUC:   svc.Command,
				TasksUC:     svc.Tasks,
				RemindersUC: svc.Reminders,
				KPI:         svc.KPI,
				Metrics:     adaptor.HertzHandler(promhttp.HandlerFor(svc.Registry, promhttp.HandlerOpts{})),
			}
			s := server.Default(server.WithHostPorts(cfg.Server.Addr))
			h.RegisterRoutes(s)

			logger.Info("assistant listening",
				zap.String("addr", cfg.Server.Addr),
				zap.String("store", cfg.Store.Driver),
				zap.String("reminders", cfg.Reminders.Driver),
				zap.String("calendar", cfg.Calendar.Driver),
				zap.String("llm", cfg.LLM.Provider),
			)
			s.Spin()
			return nil
		},
	}
}
