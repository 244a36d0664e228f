package services

import (
	"isaarte/internal/domain"
	"isaarte/internal/kv"

	"github.com/google/uuid"
)

// ProfileService keeps per-user profile extras (contact card, address book,
// communication preferences) in the kv port, one bucket per concern.
type ProfileService struct {
	KV kv.Store
}

func NewProfileService(s kv.Store) *ProfileService { return &ProfileService{KV: s} }

func profileKey(userID string) string   { return "profile:" + userID }
func addressesKey(userID string) string { return "addresses:" + userID }
func prefsKey(userID string) string     { return "prefs:" + userID }

func (s *ProfileService) Profile(userID string) (domain.Profile, error) {
	var p domain.Profile
	err := kv.GetJSON(s.KV, profileKey(userID), &p)
	if err == kv.ErrNotFound {
		return domain.Profile{}, nil
	}
	return p, err
}

func (s *ProfileService) SaveProfile(userID string, p domain.Profile) error {
	return kv.SetJSON(s.KV, profileKey(userID), p)
}

func (s *ProfileService) Addresses(userID string) ([]domain.Address, error) {
	var out []domain.Address
	err := kv.GetJSON(s.KV, addressesKey(userID), &out)
	if err == kv.ErrNotFound {
		return nil, nil
	}
	return out, err
}

// SaveAddress inserts or updates one address. The first address a user saves
// becomes the default.
func (s *ProfileService) SaveAddress(userID string, a domain.Address) (domain.Address, error) {
	addrs, err := s.Addresses(userID)
	if err != nil {
		return domain.Address{}, err
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
		a.Default = len(addrs) == 0
		addrs = append(addrs, a)
	} else {
		found := false
		for i := range addrs {
			if addrs[i].ID == a.ID {
				a.Default = addrs[i].Default
				addrs[i] = a
				found = true
				break
			}
		}
		if !found {
			addrs = append(addrs, a)
		}
	}

	return a, kv.SetJSON(s.KV, addressesKey(userID), addrs)
}

func (s *ProfileService) DeleteAddress(userID, addressID string) error {
	addrs, err := s.Addresses(userID)
	if err != nil {
		return err
	}
	out := addrs[:0]
	removedDefault := false
	for _, a := range addrs {
		if a.ID == addressID {
			removedDefault = a.Default
			continue
		}
		out = append(out, a)
	}
	if removedDefault && len(out) > 0 {
		out[0].Default = true
	}
	return kv.SetJSON(s.KV, addressesKey(userID), out)
}

func (s *ProfileService) SetDefaultAddress(userID, addressID string) error {
	addrs, err := s.Addresses(userID)
	if err != nil {
		return err
	}
	for i := range addrs {
		addrs[i].Default = addrs[i].ID == addressID
	}
	return kv.SetJSON(s.KV, addressesKey(userID), addrs)
}

func (s *ProfileService) Preferences(userID string) (domain.Preferences, error) {
	var p domain.Preferences
	err := kv.GetJSON(s.KV, prefsKey(userID), &p)
	if err == kv.ErrNotFound {
		return domain.DefaultPreferences(), nil
	}
	return p, err
}

func (s *ProfileService) SavePreferences(userID string, p domain.Preferences) error {
	return kv.SetJSON(s.KV, prefsKey(userID), p)
}
