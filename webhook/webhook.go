// Package webhook pushes gateway settings updates to a configured downstream
// consumer, such as the dashboard cache invalidator.
package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/jpillora/backoff"
	log "github.com/sirupsen/logrus"

	"github.com/alphacoop/gateway-settings-api/settings"
)

const deliveryMaxAttempts = 3

type Notifier struct {
	url     string
	client  *http.Client
	service *settings.Service
	wg      sync.WaitGroup
}

func NewNotifier(url string, timeout time.Duration, service *settings.Service) *Notifier {
	return &Notifier{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		service: service,
	}
}

// Notify is registered as a settings observer. Delivery happens from a
// separate goroutine so the update path is not blocked.
func (n *Notifier) Notify() {
	record := n.service.GetSettings()

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliver(record)
	}()
}

func (n *Notifier) deliver(record settings.Settings) {
	body, err := json.Marshal(record.ToJSON())
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Failed to serialize settings webhook payload")
		return
	}

	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	for {
		res, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
		if err == nil {
			res.Body.Close()
			if res.StatusCode < http.StatusMultipleChoices {
				return
			}
		}

		if int(b.Attempt()) >= deliveryMaxAttempts-1 {
			log.
				WithFields(log.Fields{"url": n.url, "error": err}).
				Warn("Giving up on settings webhook delivery")
			return
		}

		time.Sleep(b.Duration())
	}
}

// Close waits for in-flight deliveries to finish.
func (n *Notifier) Close() {
	n.wg.Wait()
}
