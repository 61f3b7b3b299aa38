package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// 明細の種類
const (
	KindWine  = "wine"
	KindCombo = "combo"
)

// 通知の自動クリアまでの時間
const notificationTTL = 3 * time.Second

// カートの明細。UnitPriceは追加時点の税込単価で、以後再計算しない。
type Item struct {
	Key       string  `json:"key"`
	WineID    int64   `json:"wine_id"`
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Winery    string  `json:"winery"`
	ImageURL  string  `json:"image_url"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
}

// 配送先（注文確定まではカートに仮置き）
type Shipping struct {
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	PostalCode string `json:"postal_code"`
}

// セッション1つ分のカート。
// TotalItems/TotalAmountはStoreの変更操作だけが書き換える。
type Cart struct {
	Items        []Item   `json:"items"`
	TotalItems   int64    `json:"total_items"`
	TotalAmount  float64  `json:"total_amount"`
	Open         bool     `json:"open"`
	Shipping     Shipping `json:"shipping"`
	Notification string   `json:"notification,omitempty"`
}

// 永続化するのはitems/totalsだけ。
type Snapshot struct {
	Items       []Item  `json:"items"`
	TotalItems  int64   `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}

type Persister interface {
	Save(ctx context.Context, sessionID string, s Snapshot) error
	Load(ctx context.Context, sessionID string) (Snapshot, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// Store はセッション別カートの唯一の書き手。
// 合計と明細の整合は各操作の中でだけ崩れ、戻る前に必ず再計算される。
type Store struct {
	mu        sync.Mutex
	carts     map[string]*Cart
	timers    map[string]*time.Timer
	persister Persister
}

func NewStore(p Persister) *Store {
	return &Store{
		carts:     make(map[string]*Cart),
		timers:    make(map[string]*time.Timer),
		persister: p,
	}
}

// Get はカートを返す。未ロードなら永続化済みスナップショットを読む。
func (s *Store) Get(ctx context.Context, sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, sessionID).copy()
}

// AddItem は明細を追加する。同じKeyが既にあれば数量を加算するだけで、
// 単価は最初に入れたときのまま動かさない。在庫チェックはここではしない。
func (s *Store) AddItem(ctx context.Context, sessionID string, item Item, quantity int64) Cart {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.load(ctx, sessionID)

	merged := false
	for i := range c.Items {
		if c.Items[i].Key == item.Key {
			c.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		c.Items = append(c.Items, item)
	}

	c.recompute()
	s.notify(sessionID, c, fmt.Sprintf("%s added to cart", item.Name))
	s.persist(ctx, sessionID, c)
	return c.copy()
}

// RemoveItem は明細を消す。無ければ何もしない（エラーにしない）。
func (s *Store) RemoveItem(ctx context.Context, sessionID string, key string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.load(ctx, sessionID)

	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}

	c.recompute()
	s.persist(ctx, sessionID, c)
	return c.copy()
}

// UpdateQuantity は数量を直接セットする。0以下はRemoveItemと同じ。
func (s *Store) UpdateQuantity(ctx context.Context, sessionID string, key string, quantity int64) Cart {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.load(ctx, sessionID)

	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items[i].Quantity = quantity
			break
		}
	}

	c.recompute()
	s.persist(ctx, sessionID, c)
	return c.copy()
}

// Clear は明細と合計だけを空にする。配送先と開閉フラグは触らない。
func (s *Store) Clear(ctx context.Context, sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.load(ctx, sessionID)
	c.Items = nil
	c.recompute()
	s.persist(ctx, sessionID, c)
	return c.copy()
}

// Toggle は表示フラグの反転だけ。業務的な影響はない。
func (s *Store) Toggle(ctx context.Context, sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.load(ctx, sessionID)
	c.Open = !c.Open
	return c.copy()
}

func (s *Store) Close(ctx context.Context, sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.load(ctx, sessionID)
	c.Open = false
	return c.copy()
}

// ItemQuantity は現在数量を返す。無ければ0。
func (s *Store) ItemQuantity(ctx context.Context, sessionID string, key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.load(ctx, sessionID)
	for i := range c.Items {
		if c.Items[i].Key == key {
			return c.Items[i].Quantity
		}
	}
	return 0
}

// SetShipping は配送先を仮置きする。永続化対象には含めない。
func (s *Store) SetShipping(ctx context.Context, sessionID string, sh Shipping) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.load(ctx, sessionID)
	c.Shipping = sh
	return c.copy()
}

// 呼び出し側はs.muを握っていること。
func (s *Store) load(ctx context.Context, sessionID string) *Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	c := &Cart{}
	if s.persister != nil {
		snap, found, err := s.persister.Load(ctx, sessionID)
		if err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("cart: snapshot load failed")
		} else if found {
			c.Items = snap.Items
			c.TotalItems = snap.TotalItems
			c.TotalAmount = snap.TotalAmount
		}
	}
	s.carts[sessionID] = c
	return c
}

func (s *Store) persist(ctx context.Context, sessionID string, c *Cart) {
	if s.persister == nil {
		return
	}
	err := s.persister.Save(ctx, sessionID, Snapshot{
		Items:       append([]Item(nil), c.Items...),
		TotalItems:  c.TotalItems,
		TotalAmount: c.TotalAmount,
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("cart: snapshot save failed")
	}
}

// 追加通知をセットし、一定時間後に自動で消す。
func (s *Store) notify(sessionID string, c *Cart, msg string) {
	c.Notification = msg

	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
	}
	s.timers[sessionID] = time.AfterFunc(notificationTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cur, ok := s.carts[sessionID]; ok {
			cur.Notification = ""
		}
		delete(s.timers, sessionID)
	})
}

func (c *Cart) recompute() {
	var items int64
	var amount float64
	for i := range c.Items {
		items += c.Items[i].Quantity
		amount += c.Items[i].UnitPrice * float64(c.Items[i].Quantity)
	}
	c.TotalItems = items
	c.TotalAmount = amount
}

func (c *Cart) copy() Cart {
	out := *c
	out.Items = append([]Item(nil), c.Items...)
	return out
}
