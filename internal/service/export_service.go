package service

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dao"
	"sms-settle-api/internal/model"
	"sms-settle-api/internal/utils/timeutil"
)

// ExportService 日结算 CSV 导出。
// 输出 UTF-8 带 BOM，保证 Excel 直接打开中文表头不乱码。
type ExportService struct {
	dailyDao *dao.DailyDao
	dirDao   *dao.DirectoryDao
	loc      *time.Location
}

func NewExportService() *ExportService {
	return &ExportService{
		dailyDao: &dao.DailyDao{},
		dirDao:   &dao.DirectoryDao{},
		loc:      settleLoc(),
	}
}

var csvHeader = []string{"结算日期", "客户", "通道", "国家", "发送总数", "成功数", "成本价", "销售价", "总成本", "总收入", "总利润", "状态"}

var statusCN = map[string]string{
	model.SettleStatusPending:    "待结算",
	model.SettleStatusProcessing: "结算中",
	model.SettleStatusCompleted:  "已完成",
	model.SettleStatusFailed:     "失败",
	model.SettleStatusPaid:       "已支付",
	model.SettleStatusCancelled:  "已取消",
}

// ExportDailyCSV 导出区间内已完成的日结算，按客户/通道名称联表
func (s *ExportService) ExportDailyCSV(startDate, endDate string) ([]byte, error) {
	if _, err := timeutil.ParseDate(startDate, s.loc); err != nil {
		return nil, constant.NewError(constant.CodeInvalidDate).WithDetail(startDate)
	}
	if _, err := timeutil.ParseDate(endDate, s.loc); err != nil {
		return nil, constant.NewError(constant.CodeInvalidDate).WithDetail(endDate)
	}
	if startDate > endDate {
		return nil, constant.NewError(constant.CodeInvalidRange)
	}

	rows, err := s.dailyDao.ListCompleted(startDate, endDate, 0, 0, "")
	if err != nil {
		return nil, err
	}

	custIDs := make([]uint64, 0, len(rows))
	chanIDs := make([]uint64, 0, len(rows))
	for _, r := range rows {
		custIDs = append(custIDs, r.CustomerID)
		chanIDs = append(chanIDs, r.ChannelID)
	}
	custNames, err := s.dirDao.CustomerNames(custIDs)
	if err != nil {
		return nil, err
	}
	chanNames, err := s.dirDao.ChannelNames(chanIDs)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.SettleDate,
			nameOr(custNames, r.CustomerID),
			nameOr(chanNames, r.ChannelID),
			r.Country,
			strconv.Itoa(r.TotalCount),
			strconv.Itoa(r.SuccessCount),
			r.CostPrice.StringFixed(4),
			r.SalePrice.StringFixed(4),
			r.TotalCost.StringFixed(4),
			r.TotalRevenue.StringFixed(4),
			r.TotalProfit.StringFixed(4),
			statusLabel(r.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nameOr(names map[uint64]string, id uint64) string {
	if n, ok := names[id]; ok {
		return n
	}
	return strconv.FormatUint(id, 10)
}

func statusLabel(status string) string {
	if cn, ok := statusCN[status]; ok {
		return cn
	}
	return status
}
