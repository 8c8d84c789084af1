package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	TenantID   int64     // ID тенанта
	CustomerID int64     // ID клиента
	WorkerID   int64     // ID работника
	ServiceID  int64     // ID услуги
	StartAt    time.Time // Начало записи
	EndAt      time.Time // Конец записи (полуоткрытый интервал)
	Status     string    // Запрошенный статус; неизвестный приводится к pending
	Notes      *string   // Дополнительные заметки (опционально)
}

// Response модель ответа на создание бронирования
// Либо создана новая запись, либо клиент присоединен к существующей
// групповой сессии (JoinedSession = true)
type Response struct {
	AppointmentID int64     // ID записи (новой или существующей сессии)
	Status        string    // Статус записи
	StartAt       time.Time // Начало записи
	EndAt         time.Time // Конец записи
	IsGroup       bool      // Групповая ли запись

	// Денормализованные данные
	ServiceName  string // Название услуги
	WorkerName   string // Имя работника
	CustomerName string // Имя клиента

	// Поля групповой сессии
	JoinedSession     bool   // Клиент присоединен к существующей сессии
	ParticipantStatus string // Статус участника (confirmed или waitlist)
	AvailableSpots    int    // Свободные места после операции

	CreatedAt time.Time // Время создания записи
}
