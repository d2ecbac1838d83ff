package catalog

// Sex define el sexo del animal tal como lo publica el open data (M/F/N).
// @Enum M, F, N
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "N"
)

// Kind agrupa las clases de animal que usamos para filtrar.
// El upstream publica texto libre (contiene "貓" o "狗"); cualquier otra
// cosa cae en KindOther.
type Kind string

const (
	KindCat   Kind = "cat"
	KindDog   Kind = "dog"
	KindOther Kind = "other"
)

// Animal representa un registro del catálogo de adopción tal como lo
// publica la API de open data. Los tags JSON siguen el esquema upstream:
// no los tocamos porque el cliente los persiste y los vuelve a servir.
type Animal struct {
	ID            int    `json:"animal_id"`
	SubID         string `json:"animal_subid"`
	Kind          string `json:"animal_kind"`
	Sex           Sex    `json:"animal_sex"`
	BodyType      string `json:"animal_bodytype"`
	Colour        string `json:"animal_colour"`
	Variety       string `json:"animal_Variety"`
	Place         string `json:"animal_place"`
	FoundPlace    string `json:"animal_foundplace"`
	Status        string `json:"animal_status"`
	Remark        string `json:"animal_remark"`
	Sterilization string `json:"animal_sterilization"`
	AlbumFile     string `json:"album_file"`
	ShelterName   string `json:"shelter_name"`
	ShelterTel    string `json:"shelter_tel"`
	OpenDate      string `json:"animal_opendate"`
	CreatedAt     string `json:"animal_createtime"`
	UpdatedAt     string `json:"animal_update"`
}

// HasImage indica si el registro trae una referencia de imagen usable.
// Los registros sin imagen se excluyen del catálogo servido.
func (a Animal) HasImage() bool {
	return a.AlbumFile != ""
}
