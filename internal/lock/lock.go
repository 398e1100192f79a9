package lock

import (
	"time"

	"sms-settle-api/internal/dal"
)

// 基于 redis SETNX 的运行锁：防止同一结算周期被定时任务和手工调用
// 同时触发。仅为建议性互斥，正确性兜底仍是数据库事务 + 整体重算。
// Redis 未初始化时（如单测）直接放行。

const keyPrefix = "settle:lock:"

// TryLock 尝试获取锁，返回是否获取成功
func TryLock(name string, ttl time.Duration) bool {
	if dal.RedisClient == nil {
		return true
	}
	ok, err := dal.RedisClient.SetNX(dal.RedisCtx, keyPrefix+name, 1, ttl).Result()
	if err != nil {
		// redis 故障时放行，不让锁服务拖垮结算
		return true
	}
	return ok
}

// Unlock 释放锁
func Unlock(name string) {
	if dal.RedisClient == nil {
		return
	}
	_ = dal.RedisClient.Del(dal.RedisCtx, keyPrefix+name).Err()
}
