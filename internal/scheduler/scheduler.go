package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"sms-settle-api/internal/config"
	"sms-settle-api/internal/dto"
	"sms-settle-api/internal/lock"
	"sms-settle-api/internal/logger"
	"sms-settle-api/internal/service"
	"sms-settle-api/internal/utils/timeutil"
)

// Scheduler 进程级定时结算调度器。
//
// 每个注册项互相独立：单个任务失败只记日志，不影响其他任务，也不会
// 停掉调度器；下个周期自然重试，整体重算保证上次半途失败不留脏数据。
// 任务调用的就是 HTTP 入口背后的同一批 service 方法，手工触发与定时
// 触发共用一条代码路径。
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
	loc  *time.Location
	now  func() time.Time // 可注入，测试用

	daily   *service.DailySettleService
	agent   *service.AgentSettleService
	channel *service.ChannelSettleService
	report  *service.ReportService
}

func New() *Scheduler {
	loc, err := time.LoadLocation(config.C.Settle.Timezone)
	if err != nil {
		loc = time.Local
	}
	cronLog := logger.NewLogger("cron")
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			// 同一注册项上次执行未结束时跳过本次触发；panic 只影响当次执行
			cron.WithChain(
				cron.Recover(cron.PrintfLogger(cronLog)),
				cron.SkipIfStillRunning(cron.PrintfLogger(cronLog)),
			),
		),
		log:     cronLog,
		loc:     loc,
		now:     time.Now,
		daily:   service.NewDailySettleService(),
		agent:   service.NewAgentSettleService(),
		channel: service.NewChannelSettleService(),
		report:  service.NewReportService(),
	}
}

// Start 注册全部定时任务并启动
func (s *Scheduler) Start() error {
	c := config.C.Settle
	regs := []struct {
		name string
		spec string
		job  func() error
	}{
		{"daily_settle", c.DailyCron, s.RunDailySettle},
		{"weekly_report", c.WeeklyReportCron, s.RunWeeklyReport},
		{"monthly_report", c.MonthlyReportCron, s.RunMonthlyReport},
		{"agent_month_settle", c.AgentMonthCron, s.RunAgentMonthSettle},
		{"channel_month_settle", c.ChannelMonthCron, s.RunChannelMonthSettle},
	}
	for _, r := range regs {
		r := r
		if _, err := s.cron.AddFunc(r.spec, func() { s.runJob(r.name, r.job) }); err != nil {
			return fmt.Errorf("register cron %s (%s): %w", r.name, r.spec, err)
		}
		s.log.Infof("cron registered: %s (%s)", r.name, r.spec)
	}
	s.cron.Start()
	return nil
}

// Stop 停止触发并等待在途任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// runJob 带运行锁的任务执行：同名任务在多实例间（或与手工触发并发时）互斥
func (s *Scheduler) runJob(name string, job func() error) {
	ttl := time.Duration(config.C.Settle.LockTTLSec) * time.Second
	key := "job:" + name
	if !lock.TryLock(key, ttl) {
		s.log.Warnf("job %s skipped: lock held", name)
		return
	}
	defer lock.Unlock(key)

	start := time.Now()
	if err := job(); err != nil {
		s.log.Errorf("job %s failed after %s: %v", name, time.Since(start), err)
		return
	}
	s.log.Infof("job %s done in %s", name, time.Since(start))
}

// RunDailySettle 每日结算：结算前一天
func (s *Scheduler) RunDailySettle() error {
	date := timeutil.PrevDay(s.now().In(s.loc))
	res, err := s.daily.SettleDate(date)
	if err != nil {
		return err
	}
	s.log.Infof("daily settle %s: %d groups, %d records", date, res.GroupCount, res.RecordCount)
	return nil
}

// RunWeeklyReport 周报：前 7 天按日期聚合，只读不落库
func (s *Scheduler) RunWeeklyReport() error {
	end := s.now().In(s.loc).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -6)
	return s.logReport("weekly", start.Format(timeutil.DateLayout), end.Format(timeutil.DateLayout))
}

// RunMonthlyReport 月报：上个自然月按日期聚合，只读不落库
func (s *Scheduler) RunMonthlyReport() error {
	month, err := timeutil.ParseMonth(timeutil.PrevMonth(s.now().In(s.loc)), s.loc)
	if err != nil {
		return err
	}
	first, next := timeutil.MonthRange(month)
	last := next.AddDate(0, 0, -1)
	return s.logReport("monthly", first.Format(timeutil.DateLayout), last.Format(timeutil.DateLayout))
}

func (s *Scheduler) logReport(kind, startDate, endDate string) error {
	rep, err := s.report.Generate(dto.ReportReq{
		StartDate: startDate,
		EndDate:   endDate,
		GroupBy:   dto.GroupByDate,
	})
	if err != nil {
		return err
	}
	s.log.Infof("%s report %s ~ %s: %d groups, revenue %s, profit %s (%s)",
		kind, startDate, endDate, len(rep.Groups),
		rep.Summary.TotalRevenue, rep.Summary.TotalProfit, rep.Summary.ProfitRate)
	return nil
}

// RunAgentMonthSettle 代理月结：结算上个月全部启用代理
func (s *Scheduler) RunAgentMonthSettle() error {
	month := timeutil.PrevMonth(s.now().In(s.loc))
	res, err := s.agent.AutoSettleAll(month)
	if err != nil {
		return err
	}
	s.log.Infof("agent month settle %s: %d success, %d failed, %d skipped",
		month, len(res.Success), len(res.Failed), len(res.Skipped))
	return nil
}

// RunChannelMonthSettle 通道月结：结算上个月全部启用通道
func (s *Scheduler) RunChannelMonthSettle() error {
	month := timeutil.PrevMonth(s.now().In(s.loc))
	res, err := s.channel.AutoSettleAll(month)
	if err != nil {
		return err
	}
	s.log.Infof("channel month settle %s: %d success, %d failed, %d skipped",
		month, len(res.Success), len(res.Failed), len(res.Skipped))
	return nil
}
