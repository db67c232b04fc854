package bot

// Reply literals, kept verbatim from the original deployment.
const (
	replyDenied   = "⛔ У вас нет доступа к этому боту."
	replyUsage    = "⚠️ Формат: /add Категория Сумма Комментарий"
	replyNoAmount = "⚠️ Укажи сумму."

	replyIDFormat        = "Ваш chat_id: %d"
	replyReportErrFormat = "⚠️ Ошибка в /report: %v"
	replySaveErrFormat   = "⚠️ Не удалось сохранить запись: %v"
	replyConfirmedFormat = "✅ Запись: %s — %s ₸ (%s)"
)
