// services/sftp_import.go
package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"userpulse-backend/models"
	"userpulse-backend/utils"

	"github.com/pkg/sftp"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/ssh"
	"gorm.io/gorm"
)

// SftpImportService polls customer SFTP drops for contact CSV files and
// upserts the rows into the account's contact list. Processed files are
// renamed with a .done suffix so they are not re-imported.
type SftpImportService struct {
	db *gorm.DB
}

func NewSftpImportService(db *gorm.DB) *SftpImportService {
	return &SftpImportService{db: db}
}

func (s *SftpImportService) StartScheduler() {
	c := cron.New()

	// Poll every hour at minute 15
	c.AddFunc("15 * * * *", func() {
		s.RunAll()
	})

	c.Start()
	log.Println("SFTP import scheduler started")
}

// RunAll imports from every active source, recording per-source outcome on
// the source row.
func (s *SftpImportService) RunAll() {
	var sources []models.SftpSource
	if err := s.db.Where("is_active = ?", true).Find(&sources).Error; err != nil {
		log.Printf("Failed to fetch SFTP sources: %v", err)
		return
	}

	for _, source := range sources {
		imported, err := s.ImportSource(&source)
		now := time.Now()
		updates := map[string]interface{}{"last_run_at": now, "last_error": ""}
		if err != nil {
			log.Printf("SFTP source %s: import failed: %v", source.ID, err)
			updates["last_error"] = err.Error()
		} else if imported > 0 {
			log.Printf("SFTP source %s: imported %d contacts", source.ID, imported)
		}
		s.db.Model(&source).Updates(updates)
	}
}

// ImportSource connects to one drop and imports every *.csv it finds.
func (s *SftpImportService) ImportSource(source *models.SftpSource) (int, error) {
	config := &ssh.ClientConfig{
		User: source.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(source.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         30 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", source.Host, source.Port)
	conn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return 0, fmt.Errorf("ssh dial failed: %w", err)
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return 0, fmt.Errorf("sftp session failed: %w", err)
	}
	defer client.Close()

	entries, err := client.ReadDir(source.RemoteDir)
	if err != nil {
		return 0, fmt.Errorf("listing %s failed: %w", source.RemoteDir, err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		path := client.Join(source.RemoteDir, entry.Name())
		n, err := s.importFile(client, path, source)
		if err != nil {
			return total, fmt.Errorf("importing %s failed: %w", entry.Name(), err)
		}
		total += n

		if err := client.Rename(path, path+".done"); err != nil {
			return total, fmt.Errorf("renaming %s failed: %w", entry.Name(), err)
		}
	}
	return total, nil
}

func (s *SftpImportService) importFile(client *sftp.Client, path string, source *models.SftpSource) (int, error) {
	f, err := client.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["email"]; !ok {
		return 0, errors.New("csv missing email column")
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if err := s.upsertContact(record, col, source); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// upsertContact matches existing contacts by normalized email within the
// account; unmatched rows become new contacts.
func (s *SftpImportService) upsertContact(record []string, col map[string]int, source *models.SftpSource) error {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	email := field("email")
	key := utils.NormalizeEmail(&email)
	if key == "" {
		return nil // rows without a usable email are skipped
	}

	contact := models.Contact{
		AccountID: source.AccountID,
		FirstName: field("first_name"),
		LastName:  field("last_name"),
		Email:     &email,
		BrandID:   source.BrandID,
	}
	if phone := field("phone"); phone != "" {
		contact.Phone = &phone
	}
	if ch := field("preferred_channel"); ch != "" {
		contact.PreferredChannel = ch
	}
	if lang := field("preferred_language"); lang != "" {
		contact.PreferredLanguage = lang
	}

	var existing models.Contact
	err := s.db.Where("account_id = ? AND LOWER(TRIM(email)) = ?", source.AccountID, key).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&contact).Error
	}
	if err != nil {
		return err
	}

	// Existing contact: fill blanks only, imports never clobber edits
	updates := ComputeFillIns(existing, []models.Contact{contact})
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(&existing).Updates(updates).Error
}
