package chatsync_test

import (
	"testing"
	"time"

	"laptop-admin/internal/console/chatsync"
	"laptop-admin/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"今", 0, "0s ago"},
		{"59秒", 59 * time.Second, "59s ago"},
		{"60秒で分に切り替わる", 60 * time.Second, "1 minutes ago"},
		{"59分", 59*time.Minute + 59*time.Second, "59 minutes ago"},
		{"60分で時間に切り替わる", time.Hour, "1 hours ago"},
		{"23時間59分", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"24時間で日に切り替わる", 24 * time.Hour, "1 days ago"},
		{"6日", 6 * 24 * time.Hour, "6 days ago"},
		{"7日で週に切り替わる", 7 * 24 * time.Hour, "1 weeks ago"},
		{"27日", 27 * 24 * time.Hour, "3 weeks ago"},
		// 28日は週の上限を超えるが30日割りでは0ヶ月になる（現行挙動のまま）
		{"28日", 28 * 24 * time.Hour, "0 months ago"},
		{"45日", 45 * 24 * time.Hour, "1 months ago"},
		{"11ヶ月相当", 359 * 24 * time.Hour, "11 months ago"},
		{"1年", 400 * 24 * time.Hour, "1 years ago"},
		{"2年", 800 * 24 * time.Hour, "2 years ago"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, chatsync.TimeAgo(now.Add(-c.ago), now))
		})
	}
}

func TestTimeAgo_FutureClampedToZero(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "0s ago", chatsync.TimeAgo(now.Add(time.Minute), now))
}

func TestDeliveryStatus(t *testing.T) {
	created := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	adminMsg := model.Message{
		ID:         msgAID,
		SenderRole: model.SenderRoleAdmin,
		CreatedAt:  created,
	}

	t.Run("メッセージなしは非表示", func(t *testing.T) {
		_, ok := chatsync.DeliveryStatus(model.Conversation{}, nil)
		assert.False(t, ok)
	})

	t.Run("末尾がユーザー発なら非表示", func(t *testing.T) {
		msgs := []model.Message{adminMsg, {ID: msgBID, SenderRole: model.SenderRoleUser}}
		_, ok := chatsync.DeliveryStatus(model.Conversation{}, msgs)
		assert.False(t, ok)
	})

	t.Run("取り消し済みなら非表示", func(t *testing.T) {
		recalled := adminMsg
		recalled.IsRecalled = true
		_, ok := chatsync.DeliveryStatus(model.Conversation{}, []model.Message{recalled})
		assert.False(t, ok)
	})

	t.Run("仮メッセージはsending", func(t *testing.T) {
		pending := adminMsg
		pending.ID = model.PendingIDPrefix + "abc"
		state, ok := chatsync.DeliveryStatus(model.Conversation{}, []model.Message{pending})
		assert.True(t, ok)
		assert.Equal(t, chatsync.DeliverySending, state)
	})

	t.Run("既読時刻がcreated_at以降ならseen", func(t *testing.T) {
		readAt := created
		conv := model.Conversation{LastUserReadAt: &readAt}
		state, ok := chatsync.DeliveryStatus(conv, []model.Message{adminMsg})
		assert.True(t, ok)
		assert.Equal(t, chatsync.DeliverySeen, state)
	})

	t.Run("既読時刻がcreated_atより前ならsent", func(t *testing.T) {
		readAt := created.Add(-time.Second)
		conv := model.Conversation{LastUserReadAt: &readAt}
		state, ok := chatsync.DeliveryStatus(conv, []model.Message{adminMsg})
		assert.True(t, ok)
		assert.Equal(t, chatsync.DeliverySent, state)
	})

	t.Run("未読ならsent", func(t *testing.T) {
		state, ok := chatsync.DeliveryStatus(model.Conversation{}, []model.Message{adminMsg})
		assert.True(t, ok)
		assert.Equal(t, chatsync.DeliverySent, state)
	})
}
