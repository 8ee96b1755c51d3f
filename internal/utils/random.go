package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rosterline/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Daniel", "Karen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

func GenerateRandomFullName() string {
	first := firstNames[rand.Intn(len(firstNames))]
	last := lastNames[rand.Intn(len(lastNames))]
	return first + " " + last
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := parts[0][:1] + parts[len(parts)-1]

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomManager(password string) (*domain.Manager, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	manager := &domain.Manager{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@example.com",
		Role:         domain.RoleManager,
		IsActive:     true,
	}

	return manager, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[rand.Intn(len(letters))]
		} else {
			randomID[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(randomID)
}

var businessKinds = []string{
	"Diner", "Cafe", "Bakery", "Bar", "Grill", "Market", "Bookstore",
	"Pharmacy", "Bistro", "Deli",
}

var businessAdjectives = []string{
	"Harbor", "Sunset", "Riverside", "Main Street", "Oakwood", "Lakeside",
	"Corner", "Hilltop", "Union", "Maple",
}

var seedStates = []string{
	"NY", "CA", "TX", "IL", "WA", "FL", "AZ", "CO", "MA", "OR",
}

func GenerateRandomBusiness() *domain.Business {
	return &domain.Business{
		Name: businessAdjectives[rand.Intn(len(businessAdjectives))] + " " +
			businessKinds[rand.Intn(len(businessKinds))] + " " + GenerateRandomID(0, 3),
		State: seedStates[rand.Intn(len(seedStates))],
	}
}

var templateShapes = []struct {
	Name        string
	StartMinute int
	EndMinute   int
	Color       string
}{
	{"Opening", 6 * 60, 14 * 60, "#4f9d69"},
	{"Midday", 10 * 60, 18 * 60, "#3a86ff"},
	{"Closing", 14 * 60, 22 * 60, "#ff6b35"},
	{"Overnight", 22 * 60, 6 * 60, "#6c4ab6"},
}

func GenerateRandomShiftTemplate(businessID int64) *domain.ShiftTemplate {
	shape := templateShapes[rand.Intn(len(templateShapes))]
	return &domain.ShiftTemplate{
		BusinessID:  businessID,
		Name:        shape.Name + " " + GenerateRandomID(0, 3),
		StartMinute: shape.StartMinute,
		EndMinute:   shape.EndMinute,
		Color:       shape.Color,
		IsActive:    true,
	}
}
