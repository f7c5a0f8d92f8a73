// Package sender delivers push (Expo) and mail (SMTP) side effects for
// workflow transitions. Delivery is best-effort: a failed send is logged
// and never fails the mutation that triggered it.
package sender

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"medstaff_backend/internals/configs"
	"medstaff_backend/internals/constants"
	notifModel "medstaff_backend/internals/features/notifications/model"
)

const pushChunkSize = 100 // Expo publish limit per request

var (
	pushClient *expo.PushClient
	dialer     *gomail.Dialer
	chunkDelay time.Duration
)

func Init() {
	pushClient = expo.NewPushClient(nil)

	if configs.SMTPHost != "" {
		port, err := strconv.Atoi(configs.SMTPPort)
		if err != nil {
			port = 587
		}
		dialer = gomail.NewDialer(configs.SMTPHost, port, configs.SMTPUser, configs.SMTPPass)
	}

	chunkDelay = 1 * time.Second
	if ms := configs.GetEnv("NOTIFICATION_BATCH_DELAY_MS"); ms != "" {
		if parsed, err := strconv.Atoi(ms); err == nil && parsed >= 0 {
			chunkDelay = time.Duration(parsed) * time.Millisecond
		}
	}
}

// Send pushes one notification to one user and records it in the inbox.
func Send(db *gorm.DB, userID uuid.UUID, title, body string, data map[string]string) {
	var payload []byte
	if len(data) > 0 {
		payload, _ = json.Marshal(data)
	}
	entry := notifModel.NotificationModel{
		UserID: userID,
		Title:  title,
		Body:   body,
		Data:   payload,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Println("[ERROR] notification persist:", err)
	}

	var user struct {
		ExpoPushToken *string
	}
	if err := db.Table("users").Select("expo_push_token").Where("id = ?", userID).First(&user).Error; err != nil {
		log.Println("[ERROR] push recipient lookup:", err)
		return
	}
	if user.ExpoPushToken == nil || *user.ExpoPushToken == "" {
		return
	}

	publish([]string{*user.ExpoPushToken}, title, body, data)
}

// SendMail delivers a plain-text mail; no-op when SMTP is not configured.
func SendMail(to, subject, body string) {
	if dialer == nil || to == "" {
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", configs.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	go func() {
		if err := dialer.DialAndSend(m); err != nil {
			log.Println("[ERROR] mail send:", err)
		}
	}()
}

// BatchFilter narrows broadcast recipients; empty fields match everyone.
type BatchFilter struct {
	Role   string
	Region string
}

// SendBatch pushes a broadcast to all matching users, chunked to respect
// the push provider's rate limits. Returns sent/failed counts.
func SendBatch(db *gorm.DB, filter BatchFilter, title, body string) (sent, failed int) {
	roles := constants.AllRoles
	if filter.Role != "" {
		roles = []string{filter.Role}
	}

	query := `SELECT id, expo_push_token FROM users
		WHERE active = true AND expo_push_token IS NOT NULL AND role = ANY(?)`
	args := []interface{}{pq.Array(roles)}
	if filter.Region != "" {
		query += ` AND region = ?`
		args = append(args, filter.Region)
	}

	var recipients []struct {
		ID            uuid.UUID
		ExpoPushToken string
	}
	if err := db.Raw(query, args...).Scan(&recipients).Error; err != nil {
		log.Println("[ERROR] broadcast recipient query:", err)
		return 0, 0
	}

	tokens := make([]string, 0, len(recipients))
	for _, r := range recipients {
		entry := notifModel.NotificationModel{UserID: r.ID, Title: title, Body: body}
		if err := db.Create(&entry).Error; err != nil {
			log.Println("[ERROR] broadcast persist:", err)
		}
		tokens = append(tokens, r.ExpoPushToken)
	}

	for start := 0; start < len(tokens); start += pushChunkSize {
		end := start + pushChunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		ok, bad := publish(tokens[start:end], title, body, nil)
		sent += ok
		failed += bad
		if end < len(tokens) {
			time.Sleep(chunkDelay)
		}
	}
	return sent, failed
}

func publish(rawTokens []string, title, body string, data map[string]string) (sent, failed int) {
	if pushClient == nil {
		return 0, len(rawTokens)
	}

	tokens := make([]expo.ExponentPushToken, 0, len(rawTokens))
	for _, raw := range rawTokens {
		token, err := expo.NewExponentPushToken(raw)
		if err != nil {
			log.Println("[WARN] invalid push token:", err)
			failed++
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return sent, failed
	}

	resp, err := pushClient.Publish(&expo.PushMessage{
		To:       tokens,
		Title:    title,
		Body:     body,
		Data:     data,
		Sound:    "default",
		Priority: expo.DefaultPriority,
	})
	if err != nil {
		log.Println("[ERROR] push publish:", err)
		return sent, failed + len(tokens)
	}
	if err := resp.ValidateResponse(); err != nil {
		log.Println("[WARN] push response:", err)
		failed += len(tokens)
		return sent, failed
	}
	return sent + len(tokens), failed
}
