package service

type Services struct {
	Rooms *RoomManager
}

func NewServices() *Services {
	return &Services{
		Rooms: NewRoomManager(),
	}
}
