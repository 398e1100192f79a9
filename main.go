package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"sms-settle-api/internal/config"
	"sms-settle-api/internal/dal"
	"sms-settle-api/internal/handler"
	"sms-settle-api/internal/idgen"
	"sms-settle-api/internal/middleware"
	"sms-settle-api/internal/model"
	"sms-settle-api/internal/scheduler"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)

	// 结算表结构迁移（原始记录与目录表由接收系统维护，不在此迁移）
	if err := dal.MainDB.AutoMigrate(
		&model.SettleDaily{}, &model.SettleDailyDetail{},
		&model.SettleAgentMonth{}, &model.SettleAgentMonthDetail{},
		&model.SettleChannelMonth{}, &model.SettleChannelMonthDetail{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	// cron scheduler
	sched := scheduler.New()
	if err := sched.Start(); err != nil {
		log.Fatalf("start scheduler failed: %v", err)
	}

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover(), middleware.Logger())

	v1 := r.Group("/api/v1")
	{
		sh := handler.NewSettleHandler()
		v1.POST("/settle/daily", sh.DailySettle)
		v1.POST("/settle/daily/range", sh.DailyRange)
		v1.DELETE("/settle/daily/:id", sh.DailyDelete)
		v1.POST("/settle/agent", sh.AgentSettle)
		v1.POST("/settle/agent/resettle", sh.AgentResettle)
		v1.POST("/settle/agent/:id/pay", sh.AgentPay)
		v1.DELETE("/settle/agent/:id", sh.AgentDelete)
		v1.POST("/settle/channel", sh.ChannelSettle)
		v1.POST("/settle/channel/resettle", sh.ChannelResettle)
		v1.POST("/settle/channel/:id/pay", sh.ChannelPay)
		v1.DELETE("/settle/channel/:id", sh.ChannelDelete)

		rh := handler.NewReportHandler()
		v1.GET("/settle/report", rh.Report)
		v1.GET("/settle/overview", rh.Overview)
		v1.GET("/settle/daily/export", rh.ExportDailyCSV)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	go func() {
		if err := r.Run(addr); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	sched.Stop()
}
