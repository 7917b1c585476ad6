package seeder

func Defaults() []Seeder {
	return []Seeder{
		JobRolesSeeder{},
		ApplicantsSeeder{},
	}
}
