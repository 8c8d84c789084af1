package join_group

// Request модель запроса на вступление в групповую сессию
type Request struct {
	TenantID      int64 // ID тенанта
	AppointmentID int64 // ID групповой сессии
	CustomerID    int64 // ID вступающего клиента
}

// Response модель ответа на вступление
type Response struct {
	ParticipantID  int64  // ID строки участника
	Status         string // confirmed или waitlist
	AvailableSpots int    // Свободные места после вступления
}
