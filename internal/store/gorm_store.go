package store

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gameboxd/backend/internal/models"
)

// Gorm implements Store on top of a GORM handle. The handle is owned by the
// caller; Gorm never opens or closes connections itself.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an already-open GORM handle.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// region --- Users ---

func (s *Gorm) CreateUser(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *Gorm) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Gorm) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Gorm) UpdateUser(id uint, patch UserPatch) (*models.User, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.PasswordHash != nil {
		updates["password_hash"] = *patch.PasswordHash
	}
	if len(updates) > 0 {
		res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return s.GetUserByID(id)
}

func (s *Gorm) DeleteUser(id uint) (bool, error) {
	// Owned rows go with the user via the OnDelete:CASCADE constraints.
	res := s.db.Delete(&models.User{}, id)
	return res.RowsAffected > 0, res.Error
}

// endregion

// region --- Reviews ---

func (s *Gorm) CreateReview(r *models.Review) error {
	return s.db.Create(r).Error
}

func (s *Gorm) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (s *Gorm) GetReviewByUserAndGame(userID uint, gameID string) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (s *Gorm) GetReviewsByGame(gameID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("User").
		Where("game_id = ?", gameID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (s *Gorm) GetReviewsByUser(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (s *Gorm) RecentReviewsByUser(userID uint, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (s *Gorm) UpdateReview(id, userID uint, patch ReviewPatch) (*models.Review, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if patch.Rating != nil {
		updates["rating"] = *patch.Rating
	}
	if patch.Comment != nil {
		updates["comment"] = *patch.Comment
	}
	res := s.db.Model(&models.Review{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetReviewByID(id)
}

func (s *Gorm) DeleteReview(id, userID uint) (bool, error) {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Review{})
	return res.RowsAffected > 0, res.Error
}

func (s *Gorm) AverageRating(gameID string) (*float64, int64, error) {
	var avg sql.NullFloat64
	var count int64
	row := s.db.Model(&models.Review{}).
		Where("game_id = ?", gameID).
		Select("AVG(rating), COUNT(*)").
		Row()
	if err := row.Scan(&avg, &count); err != nil {
		return nil, 0, err
	}
	if !avg.Valid {
		return nil, 0, nil
	}
	return &avg.Float64, count, nil
}

func (s *Gorm) CountReviewsByUser(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// endregion

// region --- Lists ---

func (s *Gorm) CreateList(l *models.List) error {
	return s.db.Create(l).Error
}

func (s *Gorm) GetListByID(id uint) (*models.List, error) {
	var list models.List
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("list_items.created_at ASC")
	}).First(&list, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (s *Gorm) GetListsByUser(userID uint) ([]models.List, error) {
	var lists []models.List
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

func (s *Gorm) GetPublicListsByUser(userID uint) ([]models.List, error) {
	var lists []models.List
	err := s.db.Preload("Items").
		Where("user_id = ? AND is_public = ?", userID, true).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

func (s *Gorm) UpdateList(id, userID uint, patch ListPatch) (*models.List, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.IsPublic != nil {
		updates["is_public"] = *patch.IsPublic
	}
	if len(updates) > 0 {
		res := s.db.Model(&models.List{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	} else {
		var count int64
		if err := s.db.Model(&models.List{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, nil
		}
	}
	return s.GetListByID(id)
}

func (s *Gorm) DeleteList(id, userID uint) (bool, error) {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.List{})
	return res.RowsAffected > 0, res.Error
}

func (s *Gorm) CountListsByUser(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.List{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *Gorm) AddListItem(item *models.ListItem) error {
	return s.db.Create(item).Error
}

func (s *Gorm) HasListItem(listID uint, gameID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.ListItem{}).
		Where("list_id = ? AND game_id = ?", listID, gameID).
		Count(&count).Error
	return count > 0, err
}

func (s *Gorm) DeleteListItem(listID, itemID uint) (bool, error) {
	res := s.db.Where("id = ? AND list_id = ?", itemID, listID).Delete(&models.ListItem{})
	return res.RowsAffected > 0, res.Error
}

func (s *Gorm) ListIDsContainingGame(userID uint, gameID string) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.ListItem{}).
		Joins("JOIN lists ON lists.id = list_items.list_id").
		Where("lists.user_id = ? AND list_items.game_id = ?", userID, gameID).
		Pluck("list_items.list_id", &ids).Error
	return ids, err
}

// endregion

// region --- Liked games ---

func (s *Gorm) AddLikedGame(lg *models.LikedGame) error {
	return s.db.Create(lg).Error
}

func (s *Gorm) RemoveLikedGame(userID uint, gameID string) (bool, error) {
	res := s.db.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&models.LikedGame{})
	return res.RowsAffected > 0, res.Error
}

func (s *Gorm) HasLikedGame(userID uint, gameID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.LikedGame{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}

func (s *Gorm) LikedGameIDs(userID uint) ([]string, error) {
	var ids []string
	err := s.db.Model(&models.LikedGame{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("game_id", &ids).Error
	return ids, err
}

func (s *Gorm) CountLikedGames(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.LikedGame{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// endregion

// region --- Game statuses ---

func (s *Gorm) UpsertGameStatus(userID uint, gameID string, status models.PlayStatus) (*models.GameStatus, error) {
	record := models.GameStatus{
		UserID: userID,
		GameID: gameID,
		Status: status,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.Assignments(map[string]any{"status": status, "updated_at": time.Now()}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return s.GetGameStatus(userID, gameID)
}

func (s *Gorm) RemoveGameStatus(userID uint, gameID string) (bool, error) {
	res := s.db.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&models.GameStatus{})
	return res.RowsAffected > 0, res.Error
}

func (s *Gorm) GetGameStatus(userID uint, gameID string) (*models.GameStatus, error) {
	var record models.GameStatus
	err := s.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *Gorm) GetGameStatuses(userID uint, status *models.PlayStatus) ([]models.GameStatus, error) {
	query := s.db.Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var records []models.GameStatus
	err := query.Order("updated_at DESC").Find(&records).Error
	return records, err
}

func (s *Gorm) CountGameStatuses(userID uint) (StatusCounts, error) {
	rows, err := s.db.Model(&models.GameStatus{}).
		Where("user_id = ?", userID).
		Select("status, COUNT(*) AS total").
		Group("status").
		Rows()
	if err != nil {
		return StatusCounts{}, err
	}
	defer rows.Close()

	var counts StatusCounts
	for rows.Next() {
		var status models.PlayStatus
		var total int64
		if err := rows.Scan(&status, &total); err != nil {
			return StatusCounts{}, err
		}
		switch status {
		case models.StatusPlaying:
			counts.Playing = total
		case models.StatusCompleted:
			counts.Completed = total
		case models.StatusWantToPlay:
			counts.WantToPlay = total
		}
	}
	return counts, rows.Err()
}

// endregion
