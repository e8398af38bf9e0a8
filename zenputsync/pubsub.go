package zenputsync

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/eplcas/cas_backend/config"
	"github.com/gin-gonic/gin"
)

type SyncPubSubPayload struct {
	RequestedBy   string `json:"requested_by"`
	CorrelationId string `json:"correlation_id"`
}

type PubSubPushEnvelope struct {
	Message struct {
		Data []byte `json:"data"`
		ID   string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PublishSyncRequest queues a sync run. Cloud Scheduler publishes to the same
// topic; the push subscription delivers to PubSubPushHandler.
func PublishSyncRequest(ctx context.Context, payload SyncPubSubPayload) error {
	topicName := strings.TrimSpace(os.Getenv("CAS_SYNC_TOPIC"))
	if topicName == "" {
		topicName = "cas-sync"
	}

	client, err := config.GetPubSubClient(ctx)
	if err != nil {
		return err
	}

	topic := client.Topic(topicName)
	if envBoolDefault("CAS_SYNC_CREATE_TOPIC", false) {
		topic, err = config.CreateTopicIfNotExists(ctx, client, topicName)
		if err != nil {
			return err
		}
	}

	data, _ := json.Marshal(payload)
	res := topic.Publish(ctx, &pubsub.Message{Data: data})
	_, err = res.Get(ctx)
	return err
}

// PubSubPushHandler always acks with 204: Pub/Sub retries are not the retry
// mechanism for a failed run, the run-log error row is the signal.
func PubSubPushHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !envBoolDefault("ENABLE_CAS_PUBSUB_PUSH_ENDPOINT", true) {
			c.Status(204)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(204)
			return
		}

		var envelope PubSubPushEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			c.Status(204)
			return
		}

		var payload SyncPubSubPayload
		_ = json.Unmarshal(envelope.Message.Data, &payload)

		if _, err := RunSync(c.Request.Context()); err != nil {
			config.LogError(config.GetLogger(), "zenputsync", "PubSubPushHandler", "run sync", payload, err)
		}
		c.Status(204)
	}
}

func envBoolDefault(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "true", "1", "yes", "y", "on":
		return true
	case "false", "0", "no", "n", "off":
		return false
	default:
		return def
	}
}
