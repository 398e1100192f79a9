package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dto"
	"sms-settle-api/internal/service"
	"sms-settle-api/internal/utils"
)

// SettleHandler 结算触发入口。批量接口永远 200 返回并携带
// success/failed/skipped 明细；单实体接口失败时返回业务错误。
type SettleHandler struct {
	daily   *service.DailySettleService
	agent   *service.AgentSettleService
	channel *service.ChannelSettleService
}

func NewSettleHandler() *SettleHandler {
	return &SettleHandler{
		daily:   service.NewDailySettleService(),
		agent:   service.NewAgentSettleService(),
		channel: service.NewChannelSettleService(),
	}
}

func (h *SettleHandler) DailySettle(c *gin.Context) {
	var req dto.DailySettleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	res, err := h.daily.SettleDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(res))
}

func (h *SettleHandler) DailyRange(c *gin.Context) {
	var req dto.DailyRangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	res, err := h.daily.SettleRange(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	// 批量调用整体成功，单日失败在 failed 列表中
	c.JSON(http.StatusOK, utils.Success(res))
}

func (h *SettleHandler) DailyDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	if err := h.daily.Delete(id); err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *SettleHandler) AgentSettle(c *gin.Context) {
	var req dto.AgentSettleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	if req.AgentID == 0 {
		res, err := h.agent.AutoSettleAll(req.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.FromError(err))
			return
		}
		c.JSON(http.StatusOK, utils.Success(res))
		return
	}
	m, err := h.agent.Settle(req.AgentID, req.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(m))
}

func (h *SettleHandler) AgentResettle(c *gin.Context) {
	var req dto.AgentResettleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	m, err := h.agent.Resettle(req.AgentID, req.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(m))
}

func (h *SettleHandler) AgentPay(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	if err := h.agent.MarkPaid(id); err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *SettleHandler) AgentDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	if err := h.agent.Delete(id); err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *SettleHandler) ChannelSettle(c *gin.Context) {
	var req dto.ChannelSettleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	if req.ChannelID == 0 {
		res, err := h.channel.AutoSettleAll(req.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.FromError(err))
			return
		}
		c.JSON(http.StatusOK, utils.Success(res))
		return
	}
	list, err := h.channel.Settle(req.ChannelID, req.Month, req.Country)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(list))
}

func (h *SettleHandler) ChannelResettle(c *gin.Context) {
	var req dto.ChannelResettleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	list, err := h.channel.Resettle(req.ChannelID, req.Month, req.Country)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(list))
}

func (h *SettleHandler) ChannelPay(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	if err := h.channel.MarkPaid(id); err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *SettleHandler) ChannelDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	if err := h.channel.Delete(id); err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func parseID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
