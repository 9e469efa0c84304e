package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrNotConfigured токен бота не задан, проверка недоступна
	ErrNotConfigured = errors.New("bot token not configured")
	// ErrHashMissing в initData нет поля hash
	ErrHashMissing = errors.New("hash missing")
	// ErrBadHash подпись не сошлась
	ErrBadHash = errors.New("bad hash")
)

// Verifier проверяет подпись Telegram Mini-App initData.
// Проверенные payload'ы кэшируются по сырой строке: WebView шлёт один и тот
// же initData на каждый запрос сессии, пересчитывать HMAC каждый раз незачем.
type Verifier struct {
	botToken string
	cache    *lru.Cache[string, map[string]string]
}

// NewVerifier создаёт верификатор. Пустой токен допустим: Verify будет
// возвращать ErrNotConfigured.
func NewVerifier(botToken string, cacheSize int) (*Verifier, error) {
	cache, err := lru.New[string, map[string]string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("init initdata cache: %w", err)
	}

	return &Verifier{
		botToken: botToken,
		cache:    cache,
	}, nil
}

// Enabled сконфигурирован ли верификатор токеном
func (v *Verifier) Enabled() bool {
	return v.botToken != ""
}

// Verify проверяет подпись initData (querystring вида a=1&b=2&hash=...).
// Возвращает поля payload'а без hash, либо ошибку.
//
// Схема из документации Telegram: data-check-string — отсортированные пары
// key=value без hash, склеенные через \n; секрет — HMAC-SHA256 от токена
// бота под ключом "WebAppData"; подпись — hex от HMAC-SHA256(secret, dcs).
func (v *Verifier) Verify(initData string) (map[string]string, error) {
	if !v.Enabled() {
		return nil, ErrNotConfigured
	}

	if fields, ok := v.cache.Get(initData); ok {
		return fields, nil
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("parse init data: %w", err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, ErrHashMissing
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	fields := make(map[string]string, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
		fields[key] = values.Get(key)
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(v.botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	computed := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computed), []byte(hash)) {
		return nil, ErrBadHash
	}

	v.cache.Add(initData, fields)
	return fields, nil
}
