package repository

// Models lists every GORM model, in dependency order, for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&UserModel{},
		&ShelterModel{},
		&PetModel{},
		&FavoriteModel{},
		&AdoptionRequestModel{},
		&ContactMessageModel{},
		&ContactInfoModel{},
		&DonationModel{},
	}
}
