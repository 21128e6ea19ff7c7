package store

import (
	"sort"
	"sync"
	"time"

	"gameboxd/backend/internal/models"
)

// Memory implements Store in process. It backs tests and the memory store
// driver for local development; semantics mirror the GORM implementation,
// cascades included.
type Memory struct {
	mu sync.RWMutex

	nextID   uint
	users    map[uint]models.User
	reviews  map[uint]models.Review
	lists    map[uint]models.List
	items    map[uint]models.ListItem
	likes    map[uint]models.LikedGame
	statuses map[uint]models.GameStatus
}

// NewMemory initializes an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextID:   1,
		users:    make(map[uint]models.User),
		reviews:  make(map[uint]models.Review),
		lists:    make(map[uint]models.List),
		items:    make(map[uint]models.ListItem),
		likes:    make(map[uint]models.LikedGame),
		statuses: make(map[uint]models.GameStatus),
	}
}

func (m *Memory) allocID() uint {
	id := m.nextID
	m.nextID++
	return id
}

// region --- Users ---

func (m *Memory) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.allocID()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (m *Memory) GetUserByID(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		user := u
		return &user, nil
	}
	return nil, nil
}

func (m *Memory) UpdateUser(id uint, patch UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = time.Now()
	m.users[id] = u
	user := u
	return &user, nil
}

func (m *Memory) DeleteUser(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	for rid, r := range m.reviews {
		if r.UserID == id {
			delete(m.reviews, rid)
		}
	}
	for lid, l := range m.lists {
		if l.UserID == id {
			m.deleteListLocked(lid)
		}
	}
	for gid, g := range m.likes {
		if g.UserID == id {
			delete(m.likes, gid)
		}
	}
	for sid, s := range m.statuses {
		if s.UserID == id {
			delete(m.statuses, sid)
		}
	}
	return true, nil
}

// endregion

// region --- Reviews ---

func (m *Memory) CreateReview(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.allocID()
	r.CreatedAt = time.Now()
	r.UpdatedAt = nil
	stored := *r
	stored.User = nil
	m.reviews[r.ID] = stored
	return nil
}

func (m *Memory) GetReviewByID(id uint) (*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.reviews[id]; ok {
		review := r
		return &review, nil
	}
	return nil, nil
}

func (m *Memory) GetReviewByUserAndGame(userID uint, gameID string) (*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reviews {
		if r.UserID == userID && r.GameID == gameID {
			review := r
			return &review, nil
		}
	}
	return nil, nil
}

func (m *Memory) GetReviewsByGame(gameID string) ([]models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reviews []models.Review
	for _, r := range m.reviews {
		if r.GameID == gameID {
			review := r
			if u, ok := m.users[r.UserID]; ok {
				user := u
				review.User = &user
			}
			reviews = append(reviews, review)
		}
	}
	sortReviewsNewestFirst(reviews)
	return reviews, nil
}

func (m *Memory) GetReviewsByUser(userID uint) ([]models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reviews []models.Review
	for _, r := range m.reviews {
		if r.UserID == userID {
			reviews = append(reviews, r)
		}
	}
	sortReviewsNewestFirst(reviews)
	return reviews, nil
}

func (m *Memory) RecentReviewsByUser(userID uint, limit int) ([]models.Review, error) {
	reviews, _ := m.GetReviewsByUser(userID)
	if len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

func (m *Memory) UpdateReview(id, userID uint, patch ReviewPatch) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	if patch.Rating != nil {
		r.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		r.Comment = *patch.Comment
	}
	now := time.Now()
	r.UpdatedAt = &now
	m.reviews[id] = r
	review := r
	return &review, nil
}

func (m *Memory) DeleteReview(id, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	delete(m.reviews, id)
	return true, nil
}

func (m *Memory) AverageRating(gameID string) (*float64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum, count int64
	for _, r := range m.reviews {
		if r.GameID == gameID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return nil, 0, nil
	}
	avg := float64(sum) / float64(count)
	return &avg, count, nil
}

func (m *Memory) CountReviewsByUser(userID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, r := range m.reviews {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

// endregion

// region --- Lists ---

func (m *Memory) CreateList(l *models.List) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = m.allocID()
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	stored := *l
	stored.Items = nil
	m.lists[l.ID] = stored
	return nil
}

func (m *Memory) GetListByID(id uint) (*models.List, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lists[id]
	if !ok {
		return nil, nil
	}
	list := l
	list.Items = m.itemsForListLocked(id)
	return &list, nil
}

func (m *Memory) GetListsByUser(userID uint) ([]models.List, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var lists []models.List
	for _, l := range m.lists {
		if l.UserID == userID {
			lists = append(lists, l)
		}
	}
	sortListsNewestFirst(lists)
	return lists, nil
}

func (m *Memory) GetPublicListsByUser(userID uint) ([]models.List, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var lists []models.List
	for _, l := range m.lists {
		if l.UserID == userID && l.IsPublic {
			list := l
			list.Items = m.itemsForListLocked(l.ID)
			lists = append(lists, list)
		}
	}
	sortListsNewestFirst(lists)
	return lists, nil
}

func (m *Memory) UpdateList(id, userID uint, patch ListPatch) (*models.List, error) {
	m.mu.Lock()
	l, ok := m.lists[id]
	if !ok || l.UserID != userID {
		m.mu.Unlock()
		return nil, nil
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.IsPublic != nil {
		l.IsPublic = *patch.IsPublic
	}
	l.UpdatedAt = time.Now()
	m.lists[id] = l
	m.mu.Unlock()
	return m.GetListByID(id)
}

func (m *Memory) DeleteList(id, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[id]
	if !ok || l.UserID != userID {
		return false, nil
	}
	m.deleteListLocked(id)
	return true, nil
}

func (m *Memory) deleteListLocked(id uint) {
	delete(m.lists, id)
	for iid, item := range m.items {
		if item.ListID == id {
			delete(m.items, iid)
		}
	}
}

func (m *Memory) CountListsByUser(userID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, l := range m.lists {
		if l.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *Memory) AddListItem(item *models.ListItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.allocID()
	item.CreatedAt = time.Now()
	m.items[item.ID] = *item
	return nil
}

func (m *Memory) HasListItem(listID uint, gameID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, item := range m.items {
		if item.ListID == listID && item.GameID == gameID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) DeleteListItem(listID, itemID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok || item.ListID != listID {
		return false, nil
	}
	delete(m.items, itemID)
	return true, nil
}

func (m *Memory) ListIDsContainingGame(userID uint, gameID string) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint
	for _, item := range m.items {
		if item.GameID != gameID {
			continue
		}
		if l, ok := m.lists[item.ListID]; ok && l.UserID == userID {
			ids = append(ids, item.ListID)
		}
	}
	return ids, nil
}

func (m *Memory) itemsForListLocked(listID uint) []models.ListItem {
	var items []models.ListItem
	for _, item := range m.items {
		if item.ListID == listID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// endregion

// region --- Liked games ---

func (m *Memory) AddLikedGame(lg *models.LikedGame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lg.ID = m.allocID()
	lg.CreatedAt = time.Now()
	m.likes[lg.ID] = *lg
	return nil
}

func (m *Memory) RemoveLikedGame(userID uint, gameID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, g := range m.likes {
		if g.UserID == userID && g.GameID == gameID {
			delete(m.likes, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) HasLikedGame(userID uint, gameID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.likes {
		if g.UserID == userID && g.GameID == gameID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) LikedGameIDs(userID uint) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var liked []models.LikedGame
	for _, g := range m.likes {
		if g.UserID == userID {
			liked = append(liked, g)
		}
	}
	sort.Slice(liked, func(i, j int) bool { return liked[i].ID > liked[j].ID })
	ids := make([]string, 0, len(liked))
	for _, g := range liked {
		ids = append(ids, g.GameID)
	}
	return ids, nil
}

func (m *Memory) CountLikedGames(userID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, g := range m.likes {
		if g.UserID == userID {
			count++
		}
	}
	return count, nil
}

// endregion

// region --- Game statuses ---

func (m *Memory) UpsertGameStatus(userID uint, gameID string, status models.PlayStatus) (*models.GameStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.statuses {
		if s.UserID == userID && s.GameID == gameID {
			s.Status = status
			s.UpdatedAt = time.Now()
			m.statuses[id] = s
			record := s
			return &record, nil
		}
	}
	now := time.Now()
	record := models.GameStatus{
		ID:        m.allocID(),
		UserID:    userID,
		GameID:    gameID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.statuses[record.ID] = record
	result := record
	return &result, nil
}

func (m *Memory) RemoveGameStatus(userID uint, gameID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.statuses {
		if s.UserID == userID && s.GameID == gameID {
			delete(m.statuses, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) GetGameStatus(userID uint, gameID string) (*models.GameStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.statuses {
		if s.UserID == userID && s.GameID == gameID {
			record := s
			return &record, nil
		}
	}
	return nil, nil
}

func (m *Memory) GetGameStatuses(userID uint, status *models.PlayStatus) ([]models.GameStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []models.GameStatus
	for _, s := range m.statuses {
		if s.UserID != userID {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		records = append(records, s)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })
	return records, nil
}

func (m *Memory) CountGameStatuses(userID uint) (StatusCounts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var counts StatusCounts
	for _, s := range m.statuses {
		if s.UserID != userID {
			continue
		}
		switch s.Status {
		case models.StatusPlaying:
			counts.Playing++
		case models.StatusCompleted:
			counts.Completed++
		case models.StatusWantToPlay:
			counts.WantToPlay++
		}
	}
	return counts, nil
}

// endregion

func sortReviewsNewestFirst(reviews []models.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID > reviews[j].ID
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}

func sortListsNewestFirst(lists []models.List) {
	sort.Slice(lists, func(i, j int) bool {
		if lists[i].CreatedAt.Equal(lists[j].CreatedAt) {
			return lists[i].ID > lists[j].ID
		}
		return lists[i].CreatedAt.After(lists[j].CreatedAt)
	})
}
