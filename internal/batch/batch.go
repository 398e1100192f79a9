package batch

import "fmt"

// 批量结算循环的执行骨架。并发度固定为 1：结算事务逐实体串行执行，
// 既控制数据库连接占用，也保证结果列表顺序与输入一致。
// 后续如需提高并发，只改这里，调用方契约不变。

const Concurrency = 1

// ForEach 逐个处理实体；do 返回错误或 panic 都只影响当前实体，
// 通过 onErr 上报后继续处理后续实体。
func ForEach[T any](items []T, do func(item T) error, onErr func(item T, err error)) {
	for _, it := range items {
		if err := run(do, it); err != nil {
			onErr(it, err)
		}
	}
}

func run[T any](do func(item T) error, it T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return do(it)
}
