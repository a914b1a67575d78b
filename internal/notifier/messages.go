package notifier

import (
	"fmt"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// Тексты уведомлений на японском: продукт обслуживает японский зал

const (
	subjectCreated   = "【Piste】新規予約のお知らせ"
	subjectCancelled = "【Piste】予約キャンセルのお知らせ"
)

// lineText формирует текст push-сообщения для клиента
func lineText(event domain.NotificationEvent) string {
	r := event.Reservation
	switch event.Kind {
	case domain.EventReservationCreated:
		return fmt.Sprintf(
			"%s様\nご予約ありがとうございます。\n\n日時: %s %s〜%s\nメニュー: %s\n\nご来店をお待ちしております。",
			r.CustomerName, r.Date, r.Start, r.End, r.MenuLabel,
		)
	case domain.EventReservationCancelled:
		return fmt.Sprintf(
			"%s様\nご予約のキャンセルを承りました。\n\n日時: %s %s〜%s\nメニュー: %s\n\nまたのご利用をお待ちしております。",
			r.CustomerName, r.Date, r.Start, r.End, r.MenuLabel,
		)
	default:
		return ""
	}
}

// emailSubject формирует тему письма администратору
func emailSubject(kind domain.EventKind) string {
	if kind == domain.EventReservationCancelled {
		return subjectCancelled
	}
	return subjectCreated
}

// emailText формирует тело письма администратору
func emailText(event domain.NotificationEvent) string {
	r := event.Reservation
	body := fmt.Sprintf(
		"予約ID: %d\n日付: %s\n時間: %s〜%s\nメニュー: %s\nお名前: %s\n電話番号: %s\nメール: %s\n経路: %s",
		r.ReservationID, r.Date, r.Start, r.End, r.MenuLabel,
		r.CustomerName, r.CustomerPhone, r.CustomerEmail, r.Source,
	)
	if event.Kind == domain.EventReservationCancelled && r.CancelReason != nil {
		body += fmt.Sprintf("\nキャンセル理由: %s", *r.CancelReason)
	}
	return body
}
