package cart

import (
	"isaarte/internal/kv"
)

// Store mirrors cart and favorites state into the kv port after every
// mutation, one cart per session id. It is the single writer for its keys.
type Store struct {
	KV        kv.Store
	Discounts DiscountTable
}

func NewStore(s kv.Store) *Store {
	return &Store{KV: s, Discounts: DefaultDiscounts()}
}

func cartKey(sid string) string     { return "cart:" + sid }
func favKey(sid string) string      { return "favorites:" + sid }
func userFavKey(userID string) string { return "favorites:user:" + userID }

// Load returns the session's cart, or a fresh one if none is persisted.
func (s *Store) Load(sid string) (*Cart, error) {
	c := New()
	err := kv.GetJSON(s.KV, cartKey(sid), c)
	if err == kv.ErrNotFound {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	if c.Shipping == "" {
		c.Shipping = ShippingStandard
	}
	return c, nil
}

func (s *Store) save(sid string, c *Cart) error {
	return kv.SetJSON(s.KV, cartKey(sid), c)
}

// mutate loads, applies fn, and persists only when fn reports a change.
func (s *Store) mutate(sid string, fn func(*Cart) Notice) (Notice, error) {
	c, err := s.Load(sid)
	if err != nil {
		return Notice{}, err
	}
	n := fn(c)
	if err := s.save(sid, c); err != nil {
		return Notice{}, err
	}
	return n, nil
}

func (s *Store) Add(sid string, item Item) (Notice, error) {
	return s.mutate(sid, func(c *Cart) Notice { return c.AddItem(item) })
}

func (s *Store) Remove(sid, productID string) (Notice, error) {
	return s.mutate(sid, func(c *Cart) Notice { return c.RemoveItem(productID) })
}

func (s *Store) UpdateQuantity(sid, productID string, qty int) (Notice, error) {
	return s.mutate(sid, func(c *Cart) Notice { return c.UpdateQuantity(productID, qty) })
}

func (s *Store) Clear(sid string) (Notice, error) {
	return s.mutate(sid, func(c *Cart) Notice { return c.Clear() })
}

func (s *Store) ApplyDiscount(sid, code string) (Notice, error) {
	return s.mutate(sid, func(c *Cart) Notice { return c.ApplyDiscount(code, s.Discounts) })
}

func (s *Store) SetShipping(sid string, option ShippingOption) error {
	_, err := s.mutate(sid, func(c *Cart) Notice {
		c.SetShipping(option)
		return Notice{OK: true}
	})
	return err
}

// ---------- Favorites ----------

func (s *Store) favorites(sid string) []string {
	var ids []string
	if err := kv.GetJSON(s.KV, favKey(sid), &ids); err != nil {
		return nil
	}
	return ids
}

// Favorites returns the session's saved product ids in save order.
func (s *Store) Favorites(sid string) []string { return s.favorites(sid) }

func (s *Store) IsSaved(sid, productID string) bool {
	for _, id := range s.favorites(sid) {
		if id == productID {
			return true
		}
	}
	return false
}

// ToggleSave flips membership of productID in the favorites set. The session
// bucket is always written; when a user is logged in their own bucket is
// mirrored too. silent suppresses the notice message.
func (s *Store) ToggleSave(sid, userID, productID string, silent bool) (Notice, error) {
	ids := s.favorites(sid)
	removed := false
	for i, id := range ids {
		if id == productID {
			ids = append(ids[:i], ids[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		ids = append(ids, productID)
	}

	if err := kv.SetJSON(s.KV, favKey(sid), ids); err != nil {
		return Notice{}, err
	}
	if userID != "" {
		if err := kv.SetJSON(s.KV, userFavKey(userID), ids); err != nil {
			return Notice{}, err
		}
	}

	n := Notice{OK: true}
	if !silent {
		if removed {
			n.Message = "Item removido dos favoritos"
		} else {
			n.Message = "Item salvo nos favoritos!"
		}
	}
	return n, nil
}

// HandleLogin replaces the session favorites with the user's persisted
// bucket. Session favorites saved while logged out are not merged in.
func (s *Store) HandleLogin(sid, userID string) error {
	var ids []string
	err := kv.GetJSON(s.KV, userFavKey(userID), &ids)
	if err == kv.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return kv.SetJSON(s.KV, favKey(sid), ids)
}

// HandleLogout drops the session's cart and every favorites bucket the
// departing user owned. Registered with the auth store at wiring time.
func (s *Store) HandleLogout(sid, userID string) error {
	if err := s.KV.Delete(cartKey(sid)); err != nil {
		return err
	}
	if err := s.KV.Delete(favKey(sid)); err != nil {
		return err
	}
	if userID != "" {
		return s.KV.Delete(userFavKey(userID))
	}
	return nil
}
