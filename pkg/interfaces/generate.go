package interfaces

//go:generate mockgen -source=auditor.go -destination=../mocks/mock_interfaces.go -package=mocks
