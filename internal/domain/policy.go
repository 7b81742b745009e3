package domain

// Identity описывает аутентифицированного вызывающего.
// DoctorID заполняется только для роли doctor.
type Identity struct {
	UserID   int64
	Role     UserRole
	DoctorID *int64
}

func (i Identity) IsAdmin() bool {
	return i.Role == UserRoleAdmin
}

func (i Identity) IsDoctor(doctorID int64) bool {
	return i.Role == UserRoleDoctor && i.DoctorID != nil && *i.DoctorID == doctorID
}

func CanViewAppointment(identity Identity, appointment Appointment) bool {
	switch identity.Role {
	case UserRoleAdmin:
		return true
	case UserRolePatient:
		return appointment.PatientID == identity.UserID
	case UserRoleDoctor:
		return identity.IsDoctor(appointment.DoctorID)
	}
	return false
}

// Подтверждение и завершение приема доступны только назначенному врачу или администратору.
func CanManageAppointment(identity Identity, appointment Appointment) bool {
	switch identity.Role {
	case UserRoleAdmin:
		return true
	case UserRoleDoctor:
		return identity.IsDoctor(appointment.DoctorID)
	case UserRolePatient:
		return false
	}
	return false
}

func CanCancelAppointment(identity Identity, appointment Appointment) bool {
	switch identity.Role {
	case UserRoleAdmin:
		return true
	case UserRolePatient:
		return appointment.PatientID == identity.UserID
	case UserRoleDoctor:
		return identity.IsDoctor(appointment.DoctorID)
	}
	return false
}

func CanViewMedicalRecord(identity Identity, record MedicalRecord) bool {
	switch identity.Role {
	case UserRoleAdmin:
		return true
	case UserRolePatient:
		return record.PatientID == identity.UserID
	case UserRoleDoctor:
		// Врач видит записи, которые он создал, и записи, где он сам пациент.
		return identity.IsDoctor(record.DoctorID) || record.PatientID == identity.UserID
	}
	return false
}

func CanMutateMedicalRecord(identity Identity, record MedicalRecord) bool {
	switch identity.Role {
	case UserRoleAdmin:
		return true
	case UserRoleDoctor:
		return identity.IsDoctor(record.DoctorID)
	case UserRolePatient:
		return false
	}
	return false
}

func CanMutateReview(identity Identity, review Review) bool {
	switch identity.Role {
	case UserRoleAdmin:
		return true
	case UserRolePatient:
		return review.PatientID == identity.UserID
	case UserRoleDoctor:
		return false
	}
	return false
}
