package view

import "sync"

// Panelは表示中の画面。散らばったboolフラグではなく1つのenumで持つ。
type Panel string

const (
	PanelDashboard Panel = "dashboard"
	PanelOrders    Panel = "orders"
	PanelProducts  Panel = "products"
	PanelInventory Panel = "inventory"
	PanelBanners   Panel = "banners"
	PanelUsers     Panel = "users"
	PanelChat      Panel = "chat"
)

func (p Panel) Valid() bool {
	switch p {
	case PanelDashboard, PanelOrders, PanelProducts, PanelInventory, PanelBanners, PanelUsers, PanelChat:
		return true
	}
	return false
}

// Stateは画面状態の唯一の置き場。
type State struct {
	mu    sync.Mutex
	panel Panel
}

func NewState() *State {
	return &State{panel: PanelDashboard}
}

func (s *State) Panel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// SetPanelは不正な値を無視して現在値を返す。
func (s *State) SetPanel(p Panel) Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Valid() {
		s.panel = p
	}
	return s.panel
}
