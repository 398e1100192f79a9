package service

import (
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sms-settle-api/internal/config"
	"sms-settle-api/internal/dal"
	"sms-settle-api/internal/idgen"
	"sms-settle-api/internal/model"
)

var idgenOnce sync.Once

// setupTestDB 挂一个内存 sqlite 到 dal.MainDB，建全部表结构。
// redis / rabbitmq 不初始化，lock 与 mq 对 nil 客户端直接放行。
func setupTestDB(t *testing.T) {
	t.Helper()
	idgenOnce.Do(func() {
		require.NoError(t, idgen.InitNode("default", 1))
	})
	config.C.Settle.Timezone = "UTC"
	config.ApplySettleDefaults(&config.C.Settle)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.SmsRecord{}, &model.Customer{}, &model.Agent{}, &model.Channel{},
		&model.SettleDaily{}, &model.SettleDailyDetail{},
		&model.SettleAgentMonth{}, &model.SettleAgentMonthDetail{},
		&model.SettleChannelMonth{}, &model.SettleChannelMonthDetail{},
	))
	dal.MainDB = db
	t.Cleanup(func() {
		dal.MainDB = nil
		_ = sqlDB.Close()
	})
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func seedAgent(t *testing.T, id uint64, name, rate string) {
	t.Helper()
	require.NoError(t, dal.MainDB.Create(&model.Agent{
		ID: id, Name: name, CommissionRate: dec(t, rate), Status: 1,
	}).Error)
}

func seedCustomer(t *testing.T, id, agentID uint64, name string) {
	t.Helper()
	require.NoError(t, dal.MainDB.Create(&model.Customer{
		ID: id, Name: name, AgentID: agentID, Status: 1,
	}).Error)
}

func seedChannel(t *testing.T, id uint64, name string) {
	t.Helper()
	require.NoError(t, dal.MainDB.Create(&model.Channel{
		ID: id, Name: name, Status: 1,
	}).Error)
}

var recordSeq uint64

func seedRecord(t *testing.T, customerID, channelID, agentID uint64, country, status, cost, sale string, at time.Time) {
	t.Helper()
	recordSeq++
	require.NoError(t, dal.MainDB.Create(&model.SmsRecord{
		ID:         recordSeq,
		CustomerID: customerID,
		ChannelID:  channelID,
		AgentID:    agentID,
		Country:    country,
		Phone:      "8613800000000",
		Status:     status,
		CostPrice:  dec(t, cost),
		SalePrice:  dec(t, sale),
		SendTime:   at,
	}).Error)
}

// seedRecords 批量造同参数记录
func seedRecords(t *testing.T, n int, customerID, channelID, agentID uint64, country, status, cost, sale string, at time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedRecord(t, customerID, channelID, agentID, country, status, cost, sale, at)
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	tm, err := time.Parse("2006-01-02 15:04:05", value)
	require.NoError(t, err)
	return tm.UTC()
}
