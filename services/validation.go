package services

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"ticketapi/models"
	"ticketapi/utils"
)

const (
	maxNameLen  = 255
	maxPhoneLen = 20
	maxSeatLen  = 10
	minPassword = 6

	maxCapacity   = math.MaxInt32 // events.capacity 是 INTEGER
	maxPriceScale = 2             // tickets.price 是 NUMERIC(12,2)
)

// 價格上限（不含）：NUMERIC(12,2) 整數部分最多 10 位
var maxPrice = decimal.New(1, 10)

const (
	msgNameBlank        = "Name cannot be blank."
	msgNameTooLong      = "Name cannot be longer than 255 characters."
	msgEmailBlank       = "Email cannot be blank."
	msgEmailInvalid     = "Invalid email address."
	msgEmailTooLong     = "Email cannot be longer than 255 characters."
	msgPhoneBlank       = "Phone cannot be blank."
	msgPhoneInvalid     = "Invalid phone number."
	msgPasswordTooShort = "Password must be at least 6 characters long."
	msgPasswordTooLong  = "Password cannot be longer than 72 bytes."

	msgTitleBlank      = "Title cannot be blank."
	msgTitleTooLong    = "Title cannot be longer than 255 characters."
	msgDateRequired    = "Event date is required."
	msgDateInPast      = "Event date cannot be in the past."
	msgVenueBlank      = "Venue cannot be blank."
	msgVenueTooLong    = "Venue cannot be longer than 255 characters."
	msgCapacity        = "Capacity must be greater than zero."
	msgCapacityTooBig  = "Capacity cannot be greater than 2147483647."
	msgOrganizerNeeded = "Organizer is required."

	msgSeatBlank     = "Seat number cannot be blank."
	msgSeatTooLong   = "Seat number cannot be longer than 10 characters."
	msgPriceNegative = "Price cannot be negative."
	msgPriceTooHigh  = "Price must be less than 10000000000."
	msgPriceScale    = "Price cannot have more than 2 decimal places."
	msgEventNeeded   = "Event is required."
	msgStatusInvalid = "Choose a valid status."
)

var (
	validate = validator.New()

	// 寬鬆的國際電話格式：可選的 +，數字開頭，之後允許空白 - ( ) .
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,18}$`)
)

type OrganizerInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type EventInput struct {
	Title       string
	Date        time.Time
	Venue       string
	Capacity    int
	OrganizerID string
}

// TicketInput.Status 會被忽略，新票一律是 available
type TicketInput struct {
	SeatNumber string
	Price      decimal.Decimal
	Status     models.TicketStatus
	EventID    string
}

// TicketUpdate 的 nil 欄位代表沿用原值
type TicketUpdate struct {
	SeatNumber *string
	Price      *decimal.Decimal
	Status     *models.TicketStatus
}

type problems []string

func (p *problems) add(msg string) { *p = append(*p, msg) }

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Messages: p}
}

func tooLong(s string, max int) bool { return utf8.RuneCountInString(s) > max }

// ValidateOrganizer 檢查四個欄位；update 時 password 可以留空（不改密碼）
func ValidateOrganizer(in OrganizerInput, passwordOptional bool) error {
	var p problems

	switch {
	case strings.TrimSpace(in.Name) == "":
		p.add(msgNameBlank)
	case tooLong(in.Name, maxNameLen):
		p.add(msgNameTooLong)
	}

	switch {
	case strings.TrimSpace(in.Email) == "":
		p.add(msgEmailBlank)
	case tooLong(in.Email, maxNameLen):
		p.add(msgEmailTooLong)
	case validate.Var(in.Email, "email") != nil:
		p.add(msgEmailInvalid)
	}

	switch {
	case strings.TrimSpace(in.Phone) == "":
		p.add(msgPhoneBlank)
	case tooLong(in.Phone, maxPhoneLen) || !phonePattern.MatchString(in.Phone):
		p.add(msgPhoneInvalid)
	}

	// bcrypt 只吃前 72 bytes，超過的直接擋掉
	switch {
	case passwordOptional && in.Password == "":
	case utf8.RuneCountInString(in.Password) < minPassword:
		p.add(msgPasswordTooShort)
	case len(in.Password) > utils.MaxPasswordBytes:
		p.add(msgPasswordTooLong)
	}

	return p.err()
}

// ValidateEvent 的 now 由 clock 提供
func ValidateEvent(in EventInput, now time.Time) error {
	var p problems

	switch {
	case strings.TrimSpace(in.Title) == "":
		p.add(msgTitleBlank)
	case tooLong(in.Title, maxNameLen):
		p.add(msgTitleTooLong)
	}

	switch {
	case in.Date.IsZero():
		p.add(msgDateRequired)
	case in.Date.Before(now):
		p.add(msgDateInPast)
	}

	switch {
	case strings.TrimSpace(in.Venue) == "":
		p.add(msgVenueBlank)
	case tooLong(in.Venue, maxNameLen):
		p.add(msgVenueTooLong)
	}

	switch {
	case in.Capacity <= 0:
		p.add(msgCapacity)
	case in.Capacity > maxCapacity:
		p.add(msgCapacityTooBig)
	}
	if strings.TrimSpace(in.OrganizerID) == "" {
		p.add(msgOrganizerNeeded)
	}

	return p.err()
}

func ValidateTicket(seatNumber string, price decimal.Decimal, status models.TicketStatus) error {
	return ticketProblems(seatNumber, price, status).err()
}

func ticketProblems(seatNumber string, price decimal.Decimal, status models.TicketStatus) problems {
	var p problems

	switch {
	case strings.TrimSpace(seatNumber) == "":
		p.add(msgSeatBlank)
	case tooLong(seatNumber, maxSeatLen):
		p.add(msgSeatTooLong)
	}
	switch {
	case price.IsNegative():
		p.add(msgPriceNegative)
	case price.GreaterThanOrEqual(maxPrice):
		p.add(msgPriceTooHigh)
	case !price.Equal(price.Round(maxPriceScale)):
		p.add(msgPriceScale)
	}
	if !status.Valid() {
		p.add(msgStatusInvalid)
	}
	return p
}
