package mockapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Makepad-fr/orderup/internal/model"
)

type loginRequest struct {
	Domain   string `json:"domain" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login accepts any known staff name (case-insensitive) with any password.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Domain, username and password are required")
		return
	}
	var user *model.User
	for i := range staff {
		if strings.EqualFold(staff[i].Name, req.Username) || staff[i].ID == req.Username {
			user = &staff[i]
			break
		}
	}
	if user == nil {
		abort(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	s.respondSession(c, *user)
}

func (s *Server) respondSession(c *gin.Context, u model.User) {
	tok, exp, err := s.issue(u)
	if err != nil {
		abort(c, http.StatusInternalServerError, "Could not issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok, "user": u, "expiresAt": exp})
}

func (s *Server) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) refresh(c *gin.Context) {
	s.respondSession(c, currentUser(c))
}

func (s *Server) dashboard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d model.Dashboard
	for _, o := range s.orders {
		switch o.Status {
		case model.OrderNew:
			d.NewOrders = append(d.NewOrders, o)
		case model.OrderReady:
			d.ReadyOrders = append(d.ReadyOrders, o)
		}
	}
	for _, p := range s.picklists {
		if p.Status != model.PicklistCompleted {
			d.ActivePicklists = append(d.ActivePicklists, p.Picklist)
		}
	}
	today := s.now().Format(time.DateOnly)
	for _, at := range s.fulfilled {
		if at.Format(time.DateOnly) == today {
			d.Stats.CompletedToday++
		}
	}
	d.Stats.TotalOrders = len(s.orders)
	d.Stats.TotalPicklists = len(s.picklists)
	d.Notifications = slices.Clone(s.notifications)
	c.JSON(http.StatusOK, d)
}

// paging reads pageNo and limit, defaulting to 1 and 20.
func paging(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("pageNo"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) model.Page[T] {
	total := len(items)
	pages := (total + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}
	lo := min((page-1)*limit, total)
	hi := min(lo+limit, total)
	return model.Page[T]{
		TotalRecords: total,
		TotalPages:   pages,
		PageNo:       page,
		Data:         slices.Clone(items[lo:hi]),
	}
}

func (s *Server) listOrders(c *gin.Context) {
	page, limit := paging(c)
	status := c.Query("status")
	search := strings.ToLower(c.Query("search"))
	var sources []string
	if src := c.Query("source"); src != "" {
		sources = strings.Split(strings.ToLower(src), ",")
	}
	from, to := c.Query("dateFrom"), c.Query("dateTo")

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.orders {
		if status != "" && !slices.Contains(strings.Split(status, ","), string(o.Status)) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(o.OrderNumber+" "+o.CustomerName), search) {
			continue
		}
		if len(sources) > 0 && !slices.Contains(sources, strings.ToLower(o.Source)) {
			continue
		}
		day := o.CreatedAt
		if len(day) >= 10 {
			day = day[:10]
		}
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		out = append(out, o)
	}
	c.JSON(http.StatusOK, paginate(out, page, limit))
}

func (s *Server) findOrder(id string) *model.Order {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i]
		}
	}
	return nil
}

func (s *Server) getOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.findOrder(c.Param("id"))
	if o == nil {
		abort(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req struct {
		Status model.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		abort(c, http.StatusBadRequest, "Invalid status")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.findOrder(c.Param("id"))
	if o == nil {
		abort(c, http.StatusNotFound, "Order not found")
		return
	}
	o.Status = req.Status
	c.JSON(http.StatusOK, o)
}

type createPicklistRequest struct {
	OrderIDs   []string `json:"orderIds" binding:"required,min=1"`
	LocationID string   `json:"locationId"`
	AssignedTo string   `json:"assignedTo"`
}

// createPicklist turns every line of the chosen orders into a pick line and
// moves the orders to assigned.
func (s *Server) createPicklist(c *gin.Context) {
	var req createPicklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Select at least one order")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &model.PicklistDetails{
		Picklist: model.Picklist{
			ID:        uuid.NewString(),
			Name:      "PL-" + strconv.Itoa(1234+len(s.picklists)),
			Status:    model.PicklistOpen,
			CreatedAt: s.now().Format(time.RFC3339),
		},
	}
	if req.AssignedTo != "" {
		for i := range staff {
			if staff[i].ID == req.AssignedTo {
				u := staff[i]
				d.AssignedTo = &u
			}
		}
	}
	orders := make([]*model.Order, 0, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		o := s.findOrder(id)
		if o == nil {
			abort(c, http.StatusNotFound, "Order not found")
			return
		}
		orders = append(orders, o)
	}
	for _, o := range orders {
		o.Status = model.OrderAssigned
		d.Picklist.Orders = append(d.Picklist.Orders, *o)
		d.Orders = append(d.Orders, model.OrderRef{ID: o.ID, OrderNumber: o.OrderNumber, CustomerName: o.CustomerName})
		for _, it := range o.Items {
			d.Items = append(d.Items, model.PicklistItem{
				ID:     strconv.Itoa(len(d.Items) + 1),
				Name:   it.Name,
				SKU:    it.SKU,
				Needed: it.Quantity,
				Status: model.PickPending,
			})
		}
	}
	recount(d)
	s.picklists = append(s.picklists, d)
	c.JSON(http.StatusOK, gin.H{"picklistId": d.ID})
}

func (s *Server) listPicklists(c *gin.Context) {
	page, limit := paging(c)
	status := c.Query("status")
	assigned := c.Query("assignedTo")
	search := strings.ToLower(c.Query("search"))

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Picklist
	for _, p := range s.picklists {
		if status != "" && string(p.Status) != status {
			continue
		}
		if assigned != "" && (p.AssignedTo == nil || p.AssignedTo.ID != assigned) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Assignee()), search) {
			continue
		}
		out = append(out, p.Picklist)
	}
	c.JSON(http.StatusOK, paginate(out, page, limit))
}

func (s *Server) findPicklist(id string) *model.PicklistDetails {
	for _, p := range s.picklists {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Server) getPicklist(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPicklist(c.Param("id"))
	if p == nil {
		abort(c, http.StatusNotFound, "Picklist not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// touch moves an open picklist to in progress once anything is picked.
func touch(p *model.PicklistDetails) {
	recount(p)
	if p.Status == model.PicklistOpen && p.ItemsPicked > 0 {
		p.Status = model.PicklistInProgress
	}
}

func (s *Server) updatePicklistItem(c *gin.Context) {
	var req struct {
		Picked *int `json:"picked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "picked is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPicklist(c.Param("picklistId"))
	if p == nil {
		abort(c, http.StatusNotFound, "Picklist not found")
		return
	}
	for i := range p.Items {
		it := &p.Items[i]
		if it.ID != c.Param("itemId") {
			continue
		}
		if *req.Picked < 0 || *req.Picked > it.Needed {
			abort(c, http.StatusBadRequest, "Picked quantity out of range")
			return
		}
		it.Picked = *req.Picked
		it.Status = model.PickPending
		if it.Picked == it.Needed {
			it.Status = model.PickPicked
		}
		touch(p)
		c.JSON(http.StatusOK, it)
		return
	}
	abort(c, http.StatusNotFound, "Item not found")
}

func (s *Server) markAllPicked(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPicklist(c.Param("id"))
	if p == nil {
		abort(c, http.StatusNotFound, "Picklist not found")
		return
	}
	for i := range p.Items {
		p.Items[i].Picked = p.Items[i].Needed
		p.Items[i].Status = model.PickPicked
	}
	touch(p)
	c.JSON(http.StatusOK, p)
}

// completePicklist refuses while lines are still short.
func (s *Server) completePicklist(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPicklist(c.Param("id"))
	if p == nil {
		abort(c, http.StatusNotFound, "Picklist not found")
		return
	}
	recount(p)
	if p.ItemsPicked < p.TotalItems {
		abort(c, http.StatusConflict, "Picklist has unpicked items")
		return
	}
	p.Status = model.PicklistCompleted
	for _, ref := range p.Orders {
		if o := s.findOrder(ref.ID); o != nil && o.Status != model.OrderCompleted {
			o.Status = model.OrderReady
		}
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) listLocations(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.locations)
}

// packingOrders lists the picklist's orders that are not fulfilled yet.
func (s *Server) packingOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPicklist(c.Param("id"))
	if p == nil {
		abort(c, http.StatusNotFound, "Picklist not found")
		return
	}
	out := []model.PackingOrder{}
	for _, ref := range p.Orders {
		o := s.findOrder(ref.ID)
		if o == nil || o.Status == model.OrderCompleted {
			continue
		}
		po := model.PackingOrder{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			Status:      "Processing",
			Customer:    o.CustomerName,
			Location:    "retailcloud, Concord",
			ExternalID:  o.ExternalID,
			Source:      o.Source,
			Date:        o.CreatedAt,
			Total:       o.TotalAmount,
			Items:       o.Items,
		}
		if len(po.Items) > 2 {
			po.MoreItems = len(po.Items) - 2
			po.Items = po.Items[:2]
		}
		out = append(out, po)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) fulfillOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.findOrder(c.Param("id"))
	if o == nil {
		abort(c, http.StatusNotFound, "Order not found")
		return
	}
	o.Status = model.OrderCompleted
	s.fulfilled[o.ID] = s.now()
	c.JSON(http.StatusOK, o)
}
