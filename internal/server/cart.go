package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/cart"
	"vtex-storefront/internal/domain/model"
)

const (
	orderFormCookie = "checkout.vtex.com"
	orderFormPrefix = "__ofid="
	cookieMaxAge    = 30 * 24 * 60 * 60
)

type addItemsRequest struct {
	OrderItems []dto.OrderItemInput `json:"orderItems" binding:"required,min=1"`
}

type updateItemsRequest struct {
	OrderItems []dto.OrderItemUpdate `json:"orderItems" binding:"required,min=1"`
}

type couponRequest struct {
	Text string `json:"text" binding:"required"`
}

type attachmentRequest struct {
	Content map[string]string `json:"content"`
}

// orderFormID reads the id VTEX keeps in the checkout cookie.
func orderFormID(c *gin.Context) string {
	value, err := c.Cookie(orderFormCookie)
	if err != nil {
		return ""
	}
	for _, part := range strings.Split(value, "&") {
		if id, ok := strings.CutPrefix(strings.TrimSpace(part), orderFormPrefix); ok {
			return id
		}
	}
	return ""
}

func (s *Server) session(c *gin.Context) (*cart.Session, bool) {
	session, err := s.services.Carts.Session(orderFormID(c))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return session, true
}

func (s *Server) writeCart(c *gin.Context, session *cart.Session, result model.Cart, err error) {
	if id := session.ID(); id != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(orderFormCookie, orderFormPrefix+id, cookieMaxAge, "/", "", false, true)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		writeError(c, fmt.Errorf("%w: %s", errBadRequest, err.Error()))
		return false
	}
	return true
}

func (s *Server) getCart(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := session.Load(c.Request.Context())
	s.writeCart(c, session, result, err)
}

func (s *Server) addItems(c *gin.Context) {
	var req addItemsRequest
	if !bind(c, &req) {
		return
	}
	for _, item := range req.OrderItems {
		if item.ID == "" || item.Quantity < 1 {
			writeError(c, fmt.Errorf("%w: items need an id and a positive quantity", errBadRequest))
			return
		}
	}
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := session.AddItems(c.Request.Context(), req.OrderItems)
	s.writeCart(c, session, result, err)
}

func (s *Server) updateItems(c *gin.Context) {
	var req updateItemsRequest
	if !bind(c, &req) {
		return
	}
	for _, item := range req.OrderItems {
		if item.Index < 0 || item.Quantity < 0 {
			writeError(c, fmt.Errorf("%w: index and quantity cannot be negative", errBadRequest))
			return
		}
	}
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := session.UpdateItems(c.Request.Context(), req.OrderItems)
	s.writeCart(c, session, result, err)
}

func (s *Server) removeAllItems(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := session.RemoveAllItems(c.Request.Context())
	s.writeCart(c, session, result, err)
}

func (s *Server) addCoupon(c *gin.Context) {
	var req couponRequest
	if !bind(c, &req) {
		return
	}
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := session.AddCoupon(c.Request.Context(), req.Text)
	s.writeCart(c, session, result, err)
}

func (s *Server) updateItemAttachment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		writeError(c, fmt.Errorf("%w: invalid item index %q", errBadRequest, c.Param("index")))
		return
	}
	var req attachmentRequest
	if !bind(c, &req) {
		return
	}
	session, ok := s.session(c)
	if !ok {
		return
	}
	result, err := session.UpdateItemAttachment(c.Request.Context(), index, c.Param("name"), req.Content)
	s.writeCart(c, session, result, err)
}
