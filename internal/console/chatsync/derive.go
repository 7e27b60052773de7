package chatsync

import (
	"fmt"
	"time"

	"laptop-admin/internal/domain/model"
)

// 送信状態のラベル。毎回リストから計算する（キャッシュしない）。
type DeliveryState string

const (
	DeliverySending DeliveryState = "sending"
	DeliverySeen    DeliveryState = "seen"
	DeliverySent    DeliveryState = "sent"
)

// DeliveryStatusは末尾のメッセージが管理者発かつ未取り消しのときだけ状態を返す。
// 仮メッセージならsending、相手の既読時刻がcreated_at以降ならseen、それ以外はsent。
func DeliveryStatus(conv model.Conversation, msgs []model.Message) (DeliveryState, bool) {
	if len(msgs) == 0 {
		return "", false
	}

	last := msgs[len(msgs)-1]
	if last.SenderRole != model.SenderRoleAdmin || last.IsRecalled {
		return "", false
	}

	if last.Pending() {
		return DeliverySending, true
	}
	if conv.LastUserReadAt != nil && !conv.LastUserReadAt.Before(last.CreatedAt) {
		return DeliverySeen, true
	}
	return DeliverySent, true
}

// TimeAgoは相対時刻ラベル。
// 境界は 60秒、60分、24時間、7日、4週、12ヶ月（1ヶ月=30日換算）。
func TimeAgo(t time.Time, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds ago", secs)
	}

	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%d minutes ago", mins)
	}

	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d days ago", days)
	}

	weeks := days / 7
	if weeks < 4 {
		return fmt.Sprintf("%d weeks ago", weeks)
	}

	months := days / 30
	if months < 12 {
		return fmt.Sprintf("%d months ago", months)
	}

	years := days / 365
	return fmt.Sprintf("%d years ago", years)
}
