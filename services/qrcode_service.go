package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

const qrImageSize = 256

// QRCodeService binds scannable codes to tables and to the global menu.
// The commit order on every bind is artifact, then record, then table
// reference; a failure at any step leaves the table untouched.
type QRCodeService struct {
	DB    *gorm.DB
	Store utils.FileStore
}

func NewQRCodeService(db *gorm.DB, store utils.FileStore) *QRCodeService {
	return &QRCodeService{DB: db, Store: store}
}

// BindTable generates (or regenerates) the QR code for one table. The
// destination is the table-scoped menu URL. Rebinding replaces the artifact
// and URL on the existing record, so a table never holds two codes.
func (s *QRCodeService) BindTable(tableID uint, baseURL string) (*models.QRCode, error) {
	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTableNotFound
		}
		return nil, err
	}

	url := fmt.Sprintf("%s/menu?table=%d", strings.TrimSuffix(baseURL, "/"), table.ID)
	section := fmt.Sprintf("Table %s", table.TableNumber)

	var existing *models.QRCode
	var qr models.QRCode
	err := s.DB.Where("kind = ? AND table_id = ?", models.QRKindTable, table.ID).First(&qr).Error
	if err == nil {
		existing = &qr
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bound, err := s.writeCode(existing, models.QRKindTable, &table.ID, section, url)
	if err != nil {
		return nil, err
	}

	// reference the code from the table only after the record committed
	if table.QRCodeID == nil || *table.QRCodeID != bound.ID {
		if err := s.DB.Model(&models.Table{}).Where("id = ?", table.ID).
			Update("qr_code_id", bound.ID).Error; err != nil {
			return nil, err
		}
	}

	utils.InfoLogger.Printf("QR code bound to table %s -> %s", table.TableNumber, url)
	return bound, nil
}

// BindGlobalMenu generates (or regenerates) the restaurant-wide menu code.
// The record carries the canonical section label so lookups can find it.
func (s *QRCodeService) BindGlobalMenu(baseURL string) (*models.QRCode, error) {
	url := strings.TrimSuffix(baseURL, "/") + "/menu"

	var existing *models.QRCode
	var qr models.QRCode
	err := s.DB.Where("kind = ? AND section = ?", models.QRKindGlobal, models.GlobalMenuSection).
		First(&qr).Error
	if err == nil {
		existing = &qr
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bound, err := s.writeCode(existing, models.QRKindGlobal, nil, models.GlobalMenuSection, url)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Global menu QR code bound -> %s", url)
	return bound, nil
}

// CreateAdHocCode stores a free-form code for arbitrary destinations such
// as social links. No table binding, distinguished only by its section.
func (s *QRCodeService) CreateAdHocCode(section, url string) (*models.QRCode, error) {
	return s.writeCode(nil, models.QRKindGlobal, nil, section, url)
}

// writeCode renders the artifact, stores it and then creates or updates the
// record. On a record failure the fresh artifact is removed again; on a
// successful replace the superseded artifact is removed.
func (s *QRCodeService) writeCode(existing *models.QRCode, kind string, tableID *uint, section, url string) (*models.QRCode, error) {
	png, err := utils.GenerateQRCode(url, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrQRGeneration, err)
	}

	name := fmt.Sprintf("qr-%s.png", uuid.NewString())
	ref, err := s.Store.Save(name, png)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrQRGeneration, err)
	}

	if existing == nil {
		qr := models.QRCode{
			Kind:      kind,
			TableID:   tableID,
			Section:   section,
			URL:       url,
			Code:      ref,
			CreatedAt: time.Now(),
		}
		if err := s.DB.Create(&qr).Error; err != nil {
			s.discardArtifact(ref)
			return nil, err
		}
		return &qr, nil
	}

	previous := existing.Code
	updates := map[string]interface{}{
		"section": section,
		"url":     url,
		"code":    ref,
	}
	if err := s.DB.Model(&models.QRCode{}).Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		s.discardArtifact(ref)
		return nil, err
	}
	if previous != "" && previous != ref {
		s.discardArtifact(previous)
	}

	existing.Section = section
	existing.URL = url
	existing.Code = ref
	return existing, nil
}

// ListCodes returns all codes, newest first.
func (s *QRCodeService) ListCodes() ([]models.QRCode, error) {
	var codes []models.QRCode
	if err := s.DB.Order("created_at DESC, id DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *QRCodeService) GetCode(id uint) (*models.QRCode, error) {
	var qr models.QRCode
	if err := s.DB.First(&qr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrQRCodeNotFound
		}
		return nil, err
	}
	return &qr, nil
}

// DeleteCode removes a code, releases its artifact and clears the owning
// table's reference when the code was table-bound.
func (s *QRCodeService) DeleteCode(id uint) error {
	qr, err := s.GetCode(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if qr.TableID != nil {
			if err := tx.Model(&models.Table{}).
				Where("id = ? AND qr_code_id = ?", *qr.TableID, qr.ID).
				Update("qr_code_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.QRCode{}, qr.ID).Error
	})
	if err != nil {
		return err
	}

	s.discardArtifact(qr.Code)
	utils.InfoLogger.Printf("QR code #%d deleted (%s)", qr.ID, qr.Section)
	return nil
}

func (s *QRCodeService) discardArtifact(ref string) {
	if err := s.Store.Delete(ref); err != nil {
		utils.ErrorLogger.Printf("Failed to remove QR artifact %s: %v", ref, err)
	}
}
