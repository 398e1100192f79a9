package service

import (
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"sms-settle-api/internal/batch"
	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dao"
	"sms-settle-api/internal/dto"
	"sms-settle-api/internal/model"
	"sms-settle-api/internal/mq"
	"sms-settle-api/internal/utils/timeutil"
)

// AgentSettleService 代理月度结算。
//
// 提交口径：当月该代理名下客户的全部发送记录计入营收、成本与佣金，
// 不论发送结果（代理按提交量计酬；通道成本结算则只认成功，见
// ChannelSettleService）。佣金比例取结算时点快照。
type AgentSettleService struct {
	recordDao *dao.RecordDao
	dirDao    *dao.DirectoryDao
	agentDao  *dao.AgentSettleDao
	loc       *time.Location
}

func NewAgentSettleService() *AgentSettleService {
	return &AgentSettleService{
		recordDao: &dao.RecordDao{},
		dirDao:    &dao.DirectoryDao{},
		agentDao:  &dao.AgentSettleDao{},
		loc:       settleLoc(),
	}
}

// Settle 结算单个代理。已完成的账单拒绝覆盖，需走 Resettle。
// 返回 nil 且无错误表示无可结算数据（无客户或无记录），未落行。
func (s *AgentSettleService) Settle(agentID uint64, month string) (*model.SettleAgentMonth, error) {
	m, reason, err := s.settle(agentID, month, false)
	if err != nil {
		return nil, err
	}
	if m == nil {
		log.Printf("[AGENT-SETTLE] 代理 %d %s 跳过: %s", agentID, month, reason)
	}
	return m, nil
}

// Resettle 显式重新结算入口，绕过已结算守卫；paid 仍然拒绝
func (s *AgentSettleService) Resettle(agentID uint64, month string) (*model.SettleAgentMonth, error) {
	m, reason, err := s.settle(agentID, month, true)
	if err != nil {
		return nil, err
	}
	if m == nil {
		log.Printf("[AGENT-SETTLE] 代理 %d %s 重算跳过: %s", agentID, month, reason)
	}
	return m, nil
}

func (s *AgentSettleService) settle(agentID uint64, month string, force bool) (*model.SettleAgentMonth, string, error) {
	mon, err := timeutil.ParseMonth(month, s.loc)
	if err != nil {
		return nil, "", constant.NewError(constant.CodeInvalidMonth).WithDetail(month)
	}

	agent, err := s.dirDao.GetAgent(agentID)
	if err != nil {
		return nil, "", err
	}
	if agent == nil {
		return nil, "", constant.NewError(constant.CodeAgentNotFound)
	}

	// 防止静默重复计费：已出账单必须显式走重新结算入口
	existing, err := s.agentDao.GetByKey(agentID, month)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		if existing.Status == model.SettleStatusPaid {
			return nil, "", constant.NewError(constant.CodePaidImmutable)
		}
		if !force && settledOrLater(existing.Status) {
			return nil, "", constant.NewError(constant.CodeAlreadySettled)
		}
	}

	customers, err := s.dirDao.ListActiveCustomers(agentID)
	if err != nil {
		return nil, "", err
	}
	if len(customers) == 0 {
		return nil, "无启用客户", nil
	}

	ids := make([]uint64, 0, len(customers))
	nameByID := make(map[uint64]string, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
		nameByID[c.ID] = c.Name
	}
	start, end := timeutil.MonthRange(mon)
	records, err := s.recordDao.ListByCustomersBetween(ids, start, end)
	if err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "当月无发送记录", nil
	}

	summary, details := buildAgentSettlement(agent, month, records, nameByID)
	if err := s.agentDao.Replace(summary, details); err != nil {
		return nil, "", err
	}

	_ = mq.PublishAgentSettled(mq.AgentSettledEvent{
		SettleID:         summary.ID,
		AgentID:          agentID,
		Month:            month,
		TotalProfit:      summary.TotalProfit.String(),
		CommissionAmount: summary.CommissionAmount.String(),
		SettledAt:        time.Now().Unix(),
	})
	log.Printf("[AGENT-SETTLE] 代理 %d %s 完成: 提交 %d 成功 %d 佣金 %s",
		agentID, month, summary.TotalSubmitted, summary.TotalSuccess, summary.CommissionAmount)
	return summary, "", nil
}

func settledOrLater(status string) bool {
	switch status {
	case model.SettleStatusCompleted, model.SettleStatusPaid, model.SettleStatusCancelled:
		return true
	}
	return false
}

func buildAgentSettlement(agent *model.Agent, month string, records []model.SmsRecord, nameByID map[uint64]string) (*model.SettleAgentMonth, []model.SettleAgentMonthDetail) {
	type custAgg struct {
		submitted int
		success   int
		failed    int
		revenue   decimal.Decimal
		cost      decimal.Decimal
	}
	byCustomer := make(map[uint64]*custAgg)

	totalSuccess, totalFailed := 0, 0
	totalRevenue := decimal.Zero
	totalCost := decimal.Zero
	for _, r := range records {
		a := byCustomer[r.CustomerID]
		if a == nil {
			a = &custAgg{revenue: decimal.Zero, cost: decimal.Zero}
			byCustomer[r.CustomerID] = a
		}
		a.submitted++
		a.revenue = a.revenue.Add(r.SalePrice)
		a.cost = a.cost.Add(r.CostPrice)
		totalRevenue = totalRevenue.Add(r.SalePrice)
		totalCost = totalCost.Add(r.CostPrice)
		switch r.Status {
		case model.RecordStatusSuccess:
			a.success++
			totalSuccess++
		case model.RecordStatusFailed:
			a.failed++
			totalFailed++
		}
	}

	totalProfit := totalRevenue.Sub(totalCost)
	now := time.Now()
	summary := &model.SettleAgentMonth{
		AgentID:          agent.ID,
		SettleMonth:      month,
		TotalSubmitted:   len(records),
		TotalSuccess:     totalSuccess,
		TotalFailed:      totalFailed,
		SuccessRate:      percentOfCount(totalSuccess, len(records)),
		TotalRevenue:     totalRevenue,
		TotalCost:        totalCost,
		TotalProfit:      totalProfit,
		ProfitRate:       percent(totalProfit, totalRevenue),
		CommissionRate:   agent.CommissionRate,
		CommissionAmount: totalProfit.Mul(agent.CommissionRate).Div(oneHundred).Round(moneyScale),
		CustomerCount:    len(byCustomer),
		Status:           model.SettleStatusCompleted,
		SettleTime:       &now,
	}

	custIDs := make([]uint64, 0, len(byCustomer))
	for id := range byCustomer {
		custIDs = append(custIDs, id)
	}
	sort.Slice(custIDs, func(i, j int) bool { return custIDs[i] < custIDs[j] })

	details := make([]model.SettleAgentMonthDetail, 0, len(custIDs))
	for _, id := range custIDs {
		a := byCustomer[id]
		details = append(details, model.SettleAgentMonthDetail{
			CustomerID:   id,
			CustomerName: nameByID[id],
			Submitted:    a.submitted,
			Success:      a.success,
			Failed:       a.failed,
			Revenue:      a.revenue,
			Cost:         a.cost,
			Profit:       a.revenue.Sub(a.cost),
		})
	}
	return summary, details
}

// AutoSettleAll 结算全部启用代理，逐个串行处理。
// 单个代理失败进入 Failed，无数据的进入 Skipped，批次永远整体返回。
func (s *AgentSettleService) AutoSettleAll(month string) (*dto.AgentBatchResult, error) {
	if _, err := timeutil.ParseMonth(month, s.loc); err != nil {
		return nil, constant.NewError(constant.CodeInvalidMonth).WithDetail(month)
	}
	agents, err := s.dirDao.ListActiveAgents()
	if err != nil {
		return nil, err
	}

	res := &dto.AgentBatchResult{Month: month}
	batch.ForEach(agents, func(a model.Agent) error {
		summary, reason, err := s.settle(a.ID, month, false)
		if err != nil {
			return err
		}
		if summary == nil {
			res.Skipped = append(res.Skipped, dto.BatchSkippedItem{EntityID: a.ID, Reason: reason})
			return nil
		}
		res.Success = append(res.Success, *summary)
		return nil
	}, func(a model.Agent, err error) {
		log.Printf("[AGENT-SETTLE] 代理 %d %s 失败: %v", a.ID, month, err)
		res.Failed = append(res.Failed, dto.BatchFailedItem{EntityID: a.ID, Error: err.Error()})
	})
	return res, nil
}

// MarkPaid 账单支付确认：completed → paid
func (s *AgentSettleService) MarkPaid(id uint64) error {
	return s.agentDao.MarkPaid(id, time.Now())
}

// Delete 删除账单（含明细）；paid 不可删除
func (s *AgentSettleService) Delete(id uint64) error {
	return s.agentDao.DeleteByID(id)
}

// Get 查询账单及明细
func (s *AgentSettleService) Get(id uint64) (*model.SettleAgentMonth, []model.SettleAgentMonthDetail, error) {
	m, err := s.agentDao.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, constant.NewError(constant.CodeSettleNotFound)
	}
	details, err := s.agentDao.ListDetails(id)
	if err != nil {
		return nil, nil, err
	}
	return m, details, nil
}
