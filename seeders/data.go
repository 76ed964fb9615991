package seeders

import "time"

type companySeed struct {
	Name string
}

type userSeed struct {
	Email    string
	Password string
	Fio      string
}

type employeeSeed struct {
	Fio       string
	UserEmail string // пустая строка — сотрудник без учетной записи
}

type assetSeed struct {
	AssetTag string
	Name     string
	Status   string
}

type licenseSeed struct {
	Name          string
	ExpiresInDays int
	Responsible   string // Fio сотрудника
}

var companyData = companySeed{Name: "ООО «Демо Компания»"}

var usersData = []userSeed{
	{Email: "admin@demo.local", Password: "admin123", Fio: "Администратор Системы"},
	{Email: "manager@demo.local", Password: "manager123", Fio: "Менеджер Активов"},
	{Email: "user@demo.local", Password: "user123", Fio: "Рядовой Пользователь"},
}

var employeesData = []employeeSeed{
	{Fio: "Администратор Системы", UserEmail: "admin@demo.local"},
	{Fio: "Менеджер Активов", UserEmail: "manager@demo.local"},
	{Fio: "Рядовой Пользователь", UserEmail: "user@demo.local"},
	{Fio: "Подрядчик Без Учетки", UserEmail: ""},
}

var assetsData = []assetSeed{
	{AssetTag: "NB-0001", Name: "Ноутбук Dell Latitude 5440", Status: "AVAILABLE"},
	{AssetTag: "NB-0002", Name: "Ноутбук Lenovo ThinkPad T14", Status: "AVAILABLE"},
	{AssetTag: "MON-0001", Name: "Монитор Dell U2723QE", Status: "AVAILABLE"},
	{AssetTag: "SRV-0001", Name: "Сервер HPE ProLiant DL380", Status: "IN_USE"},
	{AssetTag: "PRN-0001", Name: "Принтер HP LaserJet M428", Status: "MAINTENANCE"},
}

var licensesData = []licenseSeed{
	{Name: "Microsoft 365 Business", ExpiresInDays: 20, Responsible: "Менеджер Активов"},
	{Name: "JetBrains All Products", ExpiresInDays: 200, Responsible: "Администратор Системы"},
}

func expiryFromNow(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}
