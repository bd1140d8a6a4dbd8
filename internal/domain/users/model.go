package users

import (
	"fmt"
	"strconv"
	"strings"
)

type Role string

const (
	RoleDefault    Role = "default"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
	RoleOwner      Role = "owner"
)

// rank задаёт строгий порядок default < admin < superadmin < owner.
var rank = map[Role]int{
	RoleDefault:    0,
	RoleAdmin:      1,
	RoleSuperadmin: 2,
	RoleOwner:      3,
}

// Meets — достаточно ли роли для требуемого уровня.
func (r Role) Meets(required Role) bool {
	return rank[r] >= rank[required]
}

func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

type StateName string

const (
	StateDefault StateName = "default"

	// Константные сообщения
	StateConstAwaitName StateName = "const_await_name"
	StateConstAwaitText StateName = "const_await_text" // + id записи

	// Временные сообщения
	StateTempAwaitName StateName = "temp_await_name"
	StateTempAwaitDate StateName = "temp_await_date" // + id записи
	StateTempAwaitText StateName = "temp_await_text" // + id записи

	// Загрузка файлов
	StateFileUpload StateName = "file_upload" // + id записи
	StatePicUpload  StateName = "pic_upload"  // + id записи
)

// State — шаг диалога плюс необязательный id сущности, к которой шаг
// относится. В БД хранится строкой "name" либо "name:id".
type State struct {
	Name     StateName
	EntityID int64 // 0 — без привязки
}

func DefaultState() State { return State{Name: StateDefault} }

func (s State) String() string {
	if s.EntityID == 0 {
		return string(s.Name)
	}
	return fmt.Sprintf("%s:%d", s.Name, s.EntityID)
}

func ParseState(raw string) (State, error) {
	if raw == "" {
		return DefaultState(), nil
	}
	name, idPart, found := strings.Cut(raw, ":")
	if !found {
		return State{Name: StateName(name)}, nil
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return State{}, fmt.Errorf("state %q: bad entity id: %w", raw, err)
	}
	return State{Name: StateName(name), EntityID: id}, nil
}

type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	State     State
	Role      Role
}

// Identity — данные пользователя из апдейта Telegram.
type Identity struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// DisplayName собирает "Имя Фамилия @username"; если ничего нет — "Unknown".
func (id Identity) DisplayName() string {
	parts := make([]string, 0, 3)
	if id.FirstName != "" {
		parts = append(parts, id.FirstName)
	}
	if id.LastName != "" {
		parts = append(parts, id.LastName)
	}
	if id.Username != "" {
		parts = append(parts, "@"+id.Username)
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, " ")
}
