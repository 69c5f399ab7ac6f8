package mysql

const createHotelsSQL = `
CREATE TABLE IF NOT EXISTS hotels (
  hotel_id    VARCHAR(64)  NOT NULL,
  name        VARCHAR(255) NOT NULL,
  category    VARCHAR(64)  NOT NULL,
  location    VARCHAR(128) NOT NULL,
  price       DOUBLE       NOT NULL,
  amenities   TEXT         NULL,
  description TEXT         NULL,
  updated_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (hotel_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const createUsersSQL = `
CREATE TABLE IF NOT EXISTS users (
  user_id     VARCHAR(64)  NOT NULL,
  age         INT          NOT NULL DEFAULT 0,
  travel_type VARCHAR(64)  NULL,
  budget      VARCHAR(32)  NULL,
  nationality VARCHAR(64)  NULL,
  PRIMARY KEY (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const createRatingsSQL = `
CREATE TABLE IF NOT EXISTS ratings (
  user_id   VARCHAR(64) NOT NULL,
  hotel_id  VARCHAR(64) NOT NULL,
  rating    DOUBLE      NOT NULL,
  stay_date DATE        NULL,
  PRIMARY KEY (user_id, hotel_id),
  KEY idx_ratings_hotel (hotel_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const insertHotelsPrefix = "INSERT INTO hotels\n  (hotel_id, name, category, location, price, amenities, description)\nVALUES "

const insertHotelsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  name        = VALUES(name),\n" +
	"  category    = VALUES(category),\n" +
	"  location    = VALUES(location),\n" +
	"  price       = VALUES(price),\n" +
	"  amenities   = VALUES(amenities),\n" +
	"  description = VALUES(description),\n" +
	"  updated_at  = CURRENT_TIMESTAMP\n"

const insertUsersPrefix = "INSERT INTO users\n  (user_id, age, travel_type, budget, nationality)\nVALUES "

const insertUsersOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  age         = VALUES(age),\n" +
	"  travel_type = VALUES(travel_type),\n" +
	"  budget      = VALUES(budget),\n" +
	"  nationality = VALUES(nationality)\n"

const insertRatingsPrefix = "INSERT INTO ratings\n  (user_id, hotel_id, rating, stay_date)\nVALUES "

const insertRatingsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  rating    = VALUES(rating),\n" +
	"  stay_date = VALUES(stay_date)\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectHotelsSQL = `
SELECT hotel_id, name, category, location, price, amenities, description
FROM hotels
ORDER BY hotel_id
`

const selectUsersSQL = `
SELECT user_id, age, travel_type, budget, nationality
FROM users
ORDER BY user_id
`

const selectRatingsSQL = `
SELECT user_id, hotel_id, rating, stay_date
FROM ratings
ORDER BY user_id, hotel_id
`
