package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SettleCfg 结算任务配置：时区 + 各定时任务的 cron 表达式
type SettleCfg struct {
	Timezone          string `mapstructure:"timezone"`
	DailyCron         string `mapstructure:"dailyCron"`
	WeeklyReportCron  string `mapstructure:"weeklyReportCron"`
	MonthlyReportCron string `mapstructure:"monthlyReportCron"`
	AgentMonthCron    string `mapstructure:"agentMonthCron"`
	ChannelMonthCron  string `mapstructure:"channelMonthCron"`
	LockTTLSec        int    `mapstructure:"lockTTLSec"`
}

type Root struct {
	Server   ServerCfg `mapstructure:"server"`
	Mysql    MysqlCfg  `mapstructure:"mysql"`
	RabbitMQ RabbitCfg `mapstructure:"rabbitmq"`
	Redis    RedisCfg  `mapstructure:"redis"`
	Settle   SettleCfg `mapstructure:"settle"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	ApplySettleDefaults(&C.Settle)
}

// ApplySettleDefaults 填充结算配置缺省值（独立出来便于测试）
func ApplySettleDefaults(s *SettleCfg) {
	if strings.TrimSpace(s.Timezone) == "" {
		s.Timezone = "Asia/Shanghai"
	}
	if s.DailyCron == "" {
		s.DailyCron = "30 0 * * *"
	}
	if s.WeeklyReportCron == "" {
		s.WeeklyReportCron = "0 9 * * 1"
	}
	if s.MonthlyReportCron == "" {
		s.MonthlyReportCron = "0 9 1 * *"
	}
	if s.AgentMonthCron == "" {
		s.AgentMonthCron = "0 2 1 * *"
	}
	if s.ChannelMonthCron == "" {
		s.ChannelMonthCron = "0 3 1 * *"
	}
	if s.LockTTLSec <= 0 {
		s.LockTTLSec = 1800
	}
}
